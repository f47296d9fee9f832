package ecd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/silinternational/ecs-canary-deploy/internal"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
)

// ListRules returns every rule on the prod listener, including the default rule.
func (s *Shifter) ListRules(ctx context.Context) ([]elbv2types.Rule, error) {
	if s.prodListenerARN == "" {
		return nil, fmt.Errorf("prod listener ARN must be set in config")
	}

	input := &elbv2.DescribeRulesInput{
		ListenerArn: aws.String(s.prodListenerARN),
	}

	// DescribeRules has no paginator in the SDK, so follow the marker by hand
	var rules []elbv2types.Rule
	for {
		output, err := s.elbClient.DescribeRules(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to describe rules for listener %s: %w", s.prodListenerARN, err)
		}
		rules = append(rules, output.Rules...)

		if output.NextMarker == nil {
			break
		}
		input.Marker = output.NextMarker
	}

	return rules, nil
}

// RemoveCanaryRules deletes every rule on the prod listener whose first
// condition matches the configured HTTP header. Leftover canary rules from an
// earlier deployment would steal test traffic from this one, so each
// deployment starts from a clean listener. Returns the ARNs of removed rules.
func (s *Shifter) RemoveCanaryRules(ctx context.Context) ([]string, error) {
	if s.headerName == "" {
		return nil, fmt.Errorf("HTTP header name must be set in config")
	}

	rules, err := s.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("Current rules on listener: %s", jsonString(rules))

	var removed []string
	for _, rule := range rules {
		if !ruleMatchesHeader(rule, s.headerName) {
			continue
		}
		if err := s.deleteRule(ctx, *rule.RuleArn); err != nil {
			return removed, err
		}
		removed = append(removed, *rule.RuleArn)
	}

	if len(removed) == 0 {
		s.logger.Printf("No canary rule found for header %s", s.headerName)
	}

	return removed, nil
}

// RemoveNonDefaultRules deletes all rules on the prod listener except the
// default rule. Returns the ARNs of removed rules.
func (s *Shifter) RemoveNonDefaultRules(ctx context.Context) ([]string, error) {
	rules, err := s.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, rule := range rules {
		if aws.ToBool(rule.IsDefault) {
			continue
		}
		if err := s.deleteRule(ctx, *rule.RuleArn); err != nil {
			return removed, err
		}
		removed = append(removed, *rule.RuleArn)
	}

	return removed, nil
}

// CreateCanaryRule puts a single rule on the prod listener that forwards
// requests carrying the configured HTTP header to the green target group. All
// non-default rules are removed first so the canary rule is the only custom
// rule on the listener.
func (s *Shifter) CreateCanaryRule(ctx context.Context) (*elbv2types.Rule, error) {
	if s.headerName == "" || len(s.headerValues) == 0 {
		return nil, fmt.Errorf("HTTP header name and values must be set in config")
	}
	if s.greenTargetGroupARN == "" {
		return nil, fmt.Errorf("green target group ARN must be set in config")
	}

	removed, err := s.RemoveNonDefaultRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to clear existing rules before create: %s", err)
	}
	if len(removed) > 0 {
		s.logger.Printf("Removed %v existing rules from listener %s", len(removed), s.prodListenerARN)
	}

	priority := s.rulePriority
	if priority == 0 {
		rules, err := s.ListRules(ctx)
		if err != nil {
			return nil, err
		}
		priority = nextFreePriority(rules)
	}

	input := &elbv2.CreateRuleInput{
		ListenerArn: aws.String(s.prodListenerARN),
		Priority:    aws.Int32(int32(priority)),
		Conditions: []elbv2types.RuleCondition{
			{
				Field: aws.String("http-header"),
				HttpHeaderConfig: &elbv2types.HttpHeaderConditionConfig{
					HttpHeaderName: aws.String(s.headerName),
					Values:         s.headerValues,
				},
			},
		},
		Actions: []elbv2types.Action{
			{
				Type:           elbv2types.ActionTypeEnumForward,
				TargetGroupArn: aws.String(s.greenTargetGroupARN),
			},
		},
		Tags: []elbv2types.Tag{
			{
				Key:   aws.String(TagNameRule),
				Value: aws.String(internal.CurrentTimestamp(s.timestampLayout)),
			},
		},
	}

	output, err := s.elbClient.CreateRule(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create canary rule: %w", err)
	}
	if len(output.Rules) == 0 {
		return nil, fmt.Errorf("create rule returned no rule for listener %s", s.prodListenerARN)
	}

	rule := output.Rules[0]
	s.logger.Printf("Created canary rule %s at priority %v forwarding %s traffic to %s",
		*rule.RuleArn, priority, s.headerName, s.greenTargetGroupARN)

	return &rule, nil
}

// DefaultRuleForwardsTo reports whether the prod listener's default rule
// forwards to the given target group, directly or through a weighted forward
// config.
func (s *Shifter) DefaultRuleForwardsTo(ctx context.Context, targetGroupARN string) (bool, error) {
	rules, err := s.ListRules(ctx)
	if err != nil {
		return false, err
	}

	for _, rule := range rules {
		if !aws.ToBool(rule.IsDefault) {
			continue
		}
		return internal.IsStringInSlice(targetGroupARN, ForwardTargetGroups(rule)), nil
	}

	return false, fmt.Errorf("listener %s has no default rule", s.prodListenerARN)
}

// ForwardTargetGroups collects the target group ARNs a rule's forward actions
// point at.
func ForwardTargetGroups(rule elbv2types.Rule) []string {
	var arns []string
	for _, action := range rule.Actions {
		if action.Type != elbv2types.ActionTypeEnumForward {
			continue
		}
		if action.TargetGroupArn != nil && !internal.IsStringInSlice(*action.TargetGroupArn, arns) {
			arns = append(arns, *action.TargetGroupArn)
		}
		if action.ForwardConfig == nil {
			continue
		}
		for _, tg := range action.ForwardConfig.TargetGroups {
			if tg.TargetGroupArn == nil {
				continue
			}
			if !internal.IsStringInSlice(*tg.TargetGroupArn, arns) {
				arns = append(arns, *tg.TargetGroupArn)
			}
		}
	}

	return arns
}

func (s *Shifter) deleteRule(ctx context.Context, ruleARN string) error {
	s.logger.Printf("Removing rule %s", ruleARN)

	_, err := s.elbClient.DeleteRule(ctx, &elbv2.DeleteRuleInput{
		RuleArn: aws.String(ruleARN),
	})
	if err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", ruleARN, err)
	}

	return nil
}

// ruleMatchesHeader checks whether the rule's first condition is an
// http-header condition on the given header name. Canary rules are created
// with the header condition first, so only the first condition is checked.
func ruleMatchesHeader(rule elbv2types.Rule, headerName string) bool {
	if aws.ToBool(rule.IsDefault) || len(rule.Conditions) == 0 {
		return false
	}

	cond := rule.Conditions[0]
	if cond.Field == nil || *cond.Field != "http-header" {
		return false
	}
	if cond.HttpHeaderConfig == nil || cond.HttpHeaderConfig.HttpHeaderName == nil {
		return false
	}

	// header names are case-insensitive on the wire
	return strings.EqualFold(*cond.HttpHeaderConfig.HttpHeaderName, headerName)
}

// nextFreePriority returns the lowest rule priority not taken on the listener.
// The default rule reports its priority as the string "default" and anything
// unparseable is skipped along with it.
func nextFreePriority(rules []elbv2types.Rule) int {
	taken := make(map[int]bool, len(rules))
	for _, rule := range rules {
		if rule.Priority == nil {
			continue
		}
		p, err := strconv.Atoi(*rule.Priority)
		if err != nil {
			continue
		}
		taken[p] = true
	}

	p := 1
	for taken[p] {
		p++
	}

	return p
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
