package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"

	ecd "github.com/silinternational/ecs-canary-deploy"
)

func main() {
	lambda.Start(handler)
}

func handler(ctx context.Context, event ecd.LifecycleEvent) error {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	cfg, err := ecd.ConfigFromEnv()
	if err != nil {
		return err
	}

	shifter, err := ecd.NewShifter(awsCfg, cfg)
	if err != nil {
		return err
	}

	return shifter.BeforeInstall(ctx, event)
}
