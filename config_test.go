package ecd

import (
	"testing"
	"time"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ALB", testALB)
	t.Setenv("ALB_PROD_LISTENER", testListener)
	t.Setenv("HTTP_HEADER_NAME", "X-Canary-Test")
	t.Setenv("HTTP_HEADER_VALUE", "beta,staging")
	t.Setenv("GREEN_TARGET_GROUP", testGreenTG)
	t.Setenv("CANARY_RULE_PRIORITY", "7")
	t.Setenv("VALIDATION_URL", "https://test.example.com/health")
	t.Setenv("VALIDATION_ATTEMPTS", "3")
	t.Setenv("VALIDATION_INTERVAL", "2s")

	config, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() unexpected error: %s", err)
	}

	if config.LoadBalancerARN != testALB {
		t.Errorf("LoadBalancerARN = %s, want %s", config.LoadBalancerARN, testALB)
	}
	if config.ProdListenerARN != testListener {
		t.Errorf("ProdListenerARN = %s, want %s", config.ProdListenerARN, testListener)
	}
	if config.HeaderName != "X-Canary-Test" {
		t.Errorf("HeaderName = %s, want X-Canary-Test", config.HeaderName)
	}
	if len(config.HeaderValues) != 2 || config.HeaderValues[0] != "beta" || config.HeaderValues[1] != "staging" {
		t.Errorf("HeaderValues = %v, want [beta staging]", config.HeaderValues)
	}
	if config.GreenTargetGroupARN != testGreenTG {
		t.Errorf("GreenTargetGroupARN = %s, want %s", config.GreenTargetGroupARN, testGreenTG)
	}
	if config.RulePriority != 7 {
		t.Errorf("RulePriority = %v, want 7", config.RulePriority)
	}
	if config.ValidationURL != "https://test.example.com/health" {
		t.Errorf("ValidationURL = %s, want https://test.example.com/health", config.ValidationURL)
	}
	if config.ValidationAttempts != 3 {
		t.Errorf("ValidationAttempts = %v, want 3", config.ValidationAttempts)
	}
	if config.ValidationInterval != 2*time.Second {
		t.Errorf("ValidationInterval = %v, want 2s", config.ValidationInterval)
	}
}

func TestConfigFromEnv_unset(t *testing.T) {
	// cleanenv leaves unset fields at their zero values; NewShifter backfills
	// defaults from DefaultConfig
	config, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() unexpected error: %s", err)
	}

	if config.RulePriority != 0 {
		t.Errorf("RulePriority = %v, want 0", config.RulePriority)
	}
	if config.ValidationInterval != 0 {
		t.Errorf("ValidationInterval = %v, want 0", config.ValidationInterval)
	}
}
