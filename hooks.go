package ecd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codedeploy"
	cdTypes "github.com/aws/aws-sdk-go-v2/service/codedeploy/types"
)

// RunHook runs fn under the lifecycle hook contract: a terminal status is
// reported back to CodeDeploy exactly once on every path out of the hook,
// Succeeded only when fn returns nil. An error from fn is logged and folded
// into the Failed status rather than returned, so CodeDeploy fails the
// deployment instead of retrying the Lambda. RunHook itself only returns an
// error when the status report fails.
func (s *Shifter) RunHook(ctx context.Context, name string, event LifecycleEvent, fn func(context.Context) error) (err error) {
	s.logger.Printf("Received event: %s", jsonString(event))
	s.logger.Printf("Entering %s hook", name)

	status := StatusFailed
	defer func() {
		err = s.PutLifecycleEventStatus(ctx, event, status)
	}()

	if hookErr := fn(ctx); hookErr != nil {
		s.logger.Printf("%s hook failed: %s", name, hookErr)
		return nil
	}

	status = StatusSucceeded
	return nil
}

// PutLifecycleEventStatus reports a terminal hook status for the deployment
// lifecycle event so CodeDeploy never waits out its timeout on this hook.
func (s *Shifter) PutLifecycleEventStatus(ctx context.Context, event LifecycleEvent, status string) error {
	s.logger.Printf("Reporting %s for deployment %s", status, event.DeploymentID)

	input := &codedeploy.PutLifecycleEventHookExecutionStatusInput{
		DeploymentId:                  aws.String(event.DeploymentID),
		LifecycleEventHookExecutionId: aws.String(event.LifecycleEventHookExecutionID),
		Status:                        cdTypes.LifecycleEventStatus(status),
	}

	output, err := s.deployClient.PutLifecycleEventHookExecutionStatus(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to put lifecycle event hook execution status: %w", err)
	}

	s.logger.Printf("Status %s accepted for execution %s", status, aws.ToString(output.LifecycleEventHookExecutionId))
	return nil
}

// BeforeInstall clears any canary rule a previous deployment left on the prod
// listener before the replacement task set is installed.
func (s *Shifter) BeforeInstall(ctx context.Context, event LifecycleEvent) error {
	return s.RunHook(ctx, HookBeforeInstall, event, func(ctx context.Context) error {
		removed, err := s.RemoveCanaryRules(ctx)
		if err != nil {
			return err
		}

		s.logger.Printf("Removed %v canary rules from ALB %s listener %s",
			len(removed), s.loadBalancerARN, s.prodListenerARN)
		return nil
	})
}

// AfterInstall routes test traffic to the replacement task set by creating the
// canary rule on the prod listener once the green target group exists.
func (s *Shifter) AfterInstall(ctx context.Context, event LifecycleEvent) error {
	return s.RunHook(ctx, HookAfterInstall, event, func(ctx context.Context) error {
		rule, err := s.CreateCanaryRule(ctx)
		if err != nil {
			return err
		}

		s.logger.Printf("Canary rule in place: %s", jsonString(rule))
		return nil
	})
}

// AfterAllowTestTraffic exercises the replacement task set through the canary
// rule before any production traffic shifts. With no validation URL configured
// it reports success immediately.
func (s *Shifter) AfterAllowTestTraffic(ctx context.Context, event LifecycleEvent) error {
	return s.RunHook(ctx, HookAfterAllowTestTraffic, event, func(ctx context.Context) error {
		return s.ValidateTestEndpoint(ctx)
	})
}

// BeforeAllowTraffic removes all non-default rules from the prod listener so
// nothing intercepts production traffic once it shifts to the replacement
// task set.
func (s *Shifter) BeforeAllowTraffic(ctx context.Context, event LifecycleEvent) error {
	return s.RunHook(ctx, HookBeforeAllowTraffic, event, func(ctx context.Context) error {
		removed, err := s.RemoveNonDefaultRules(ctx)
		if err != nil {
			return err
		}

		s.logger.Printf("Removed %v rules from ALB %s listener %s",
			len(removed), s.loadBalancerARN, s.prodListenerARN)
		return nil
	})
}

// AfterAllowTraffic runs once production traffic has shifted. When a green
// target group is configured it verifies the listener's default rule now
// forwards there.
func (s *Shifter) AfterAllowTraffic(ctx context.Context, event LifecycleEvent) error {
	return s.RunHook(ctx, HookAfterAllowTraffic, event, func(ctx context.Context) error {
		if s.greenTargetGroupARN == "" {
			s.logger.Println("No green target group configured, skipping default rule check")
			return nil
		}

		forwards, err := s.DefaultRuleForwardsTo(ctx, s.greenTargetGroupARN)
		if err != nil {
			return err
		}
		if !forwards {
			return fmt.Errorf("default rule on listener %s does not forward to %s after traffic shift",
				s.prodListenerARN, s.greenTargetGroupARN)
		}

		s.logger.Printf("Default rule now forwards to %s", s.greenTargetGroupARN)
		return nil
	})
}
