package ecd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
)

// ValidateTestEndpoint sends test traffic through the canary rule: a GET to
// the configured validation URL carrying the canary header, retried on a fixed
// interval until a 2xx response or the attempts run out. With no validation
// URL configured it succeeds immediately.
func (s *Shifter) ValidateTestEndpoint(ctx context.Context) error {
	if s.validationURL == "" {
		s.logger.Println("No validation URL configured, skipping test traffic validation")
		return nil
	}

	s.logger.Printf("Validating test endpoint %s with header %s", s.validationURL, s.headerName)

	err := retry.Do(
		func() error {
			return s.probeTestEndpoint(ctx)
		},
		retry.Attempts(uint(s.validationAttempts)),
		retry.Delay(s.validationInterval),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			s.logger.Printf("Validation attempt %v failed: %s", attempt+1, err)
		}),
	)
	if err != nil {
		return fmt.Errorf("test endpoint validation failed: %w", err)
	}

	s.logger.Println("Test endpoint validation succeeded")
	return nil
}

func (s *Shifter) probeTestEndpoint(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.validationURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build validation request: %s", err)
	}
	if s.headerName != "" && len(s.headerValues) > 0 {
		req.Header.Set(s.headerName, s.headerValues[0])
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("test endpoint returned %s", resp.Status)
	}

	return nil
}
