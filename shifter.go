package ecd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codedeploy"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

// ELBV2API is the part of the Elastic Load Balancing v2 API the Shifter uses.
// The real client satisfies it; tests substitute a fake.
type ELBV2API interface {
	DescribeRules(ctx context.Context, params *elbv2.DescribeRulesInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeRulesOutput, error)
	CreateRule(ctx context.Context, params *elbv2.CreateRuleInput, optFns ...func(*elbv2.Options)) (*elbv2.CreateRuleOutput, error)
	DeleteRule(ctx context.Context, params *elbv2.DeleteRuleInput, optFns ...func(*elbv2.Options)) (*elbv2.DeleteRuleOutput, error)
}

// CodeDeployAPI is the part of the CodeDeploy API the Shifter uses.
type CodeDeployAPI interface {
	PutLifecycleEventHookExecutionStatus(ctx context.Context, params *codedeploy.PutLifecycleEventHookExecutionStatusInput, optFns ...func(*codedeploy.Options)) (*codedeploy.PutLifecycleEventHookExecutionStatusOutput, error)
}

type Shifter struct {
	greenTargetGroupARN string
	headerName          string
	headerValues        []string
	loadBalancerARN     string
	logger              *log.Logger
	prodListenerARN     string
	rulePriority        int
	timestampLayout     string
	validationAttempts  int
	validationInterval  time.Duration
	validationURL       string

	awsCfg       aws.Config
	elbClient    ELBV2API
	deployClient CodeDeployAPI
	httpClient   *http.Client
}

func NewShifter(awsCfg aws.Config, config *Config) (*Shifter, error) {
	if awsCfg.Region == "" {
		return nil, fmt.Errorf("awsCfg must be initialized before use")
	}

	shifter := &Shifter{
		awsCfg: awsCfg,
	}

	if config == nil {
		config = &DefaultConfig
	}

	if err := shifter.loadConfig(config); err != nil {
		return nil, fmt.Errorf("error loading config: %s", err)
	}

	shifter.elbClient = elbv2.NewFromConfig(awsCfg)
	shifter.deployClient = codedeploy.NewFromConfig(awsCfg)
	shifter.httpClient = &http.Client{Timeout: DefaultHTTPTimeout}

	return shifter, nil
}

func (s *Shifter) loadConfig(config *Config) error {
	if config.Logger == nil {
		config.Logger = log.Default()
		config.Logger.SetOutput(os.Stdout)
	}
	if config.ValidationAttempts == 0 {
		config.ValidationAttempts = DefaultConfig.ValidationAttempts
	}
	if config.ValidationInterval == 0 {
		config.ValidationInterval = DefaultConfig.ValidationInterval
	}
	if config.TimestampLayout == "" {
		config.TimestampLayout = DefaultConfig.TimestampLayout
	}

	s.greenTargetGroupARN = config.GreenTargetGroupARN
	s.headerName = config.HeaderName
	s.headerValues = config.HeaderValues
	s.loadBalancerARN = config.LoadBalancerARN
	s.logger = config.Logger
	s.prodListenerARN = config.ProdListenerARN
	s.rulePriority = config.RulePriority
	s.timestampLayout = config.TimestampLayout
	s.validationAttempts = config.ValidationAttempts
	s.validationInterval = config.ValidationInterval
	s.validationURL = config.ValidationURL

	return nil
}
