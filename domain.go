package ecd

import (
	"log"
	"time"
)

const (
	DefaultValidationAttempts = 5
	DefaultValidationInterval = 5 * time.Second
	DefaultHTTPTimeout        = 10 * time.Second
	DefaultTimestampLayout    = "20060102T150405"
	StatusSucceeded           = "Succeeded"
	StatusFailed              = "Failed"
	TagNameRule               = "ecs-canary-deploy-rule"
	Version                   = "0.0.0"
)

// Lifecycle hook names as CodeDeploy knows them, in appspec.yml order.
const (
	HookBeforeInstall         = "BeforeInstall"
	HookAfterInstall          = "AfterInstall"
	HookAfterAllowTestTraffic = "AfterAllowTestTraffic"
	HookBeforeAllowTraffic    = "BeforeAllowTraffic"
	HookAfterAllowTraffic     = "AfterAllowTraffic"
)

// LifecycleEvent is the payload CodeDeploy sends to a lifecycle hook Lambda.
type LifecycleEvent struct {
	DeploymentID                  string `json:"DeploymentId"`
	LifecycleEventHookExecutionID string `json:"LifecycleEventHookExecutionId"`
}

// Config carries everything a Shifter needs. The env tags match the variables
// the deployment pipeline sets on each hook function; ConfigFromEnv reads them.
type Config struct {
	GreenTargetGroupARN string        `env:"GREEN_TARGET_GROUP"`
	HeaderName          string        `env:"HTTP_HEADER_NAME"`
	HeaderValues        []string      `env:"HTTP_HEADER_VALUE" env-separator:","`
	LoadBalancerARN     string        `env:"APP_ALB"`
	Logger              *log.Logger
	ProdListenerARN     string        `env:"ALB_PROD_LISTENER"`
	RulePriority        int           `env:"CANARY_RULE_PRIORITY"`
	TimestampLayout     string
	ValidationAttempts  int           `env:"VALIDATION_ATTEMPTS"`
	ValidationInterval  time.Duration `env:"VALIDATION_INTERVAL"`
	ValidationURL       string        `env:"VALIDATION_URL"`
}

var DefaultConfig = Config{
	GreenTargetGroupARN: "",
	HeaderName:          "",
	HeaderValues:        nil,
	LoadBalancerARN:     "",
	Logger:              nil,
	ProdListenerARN:     "",
	RulePriority:        0,
	TimestampLayout:     DefaultTimestampLayout,
	ValidationAttempts:  DefaultValidationAttempts,
	ValidationInterval:  DefaultValidationInterval,
	ValidationURL:       "",
}
