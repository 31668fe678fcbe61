// Package onboarding reads the user's current onboarding step from the
// onboarding-steps service. The step read is the cheapest precondition in the
// pipeline and always runs first.
package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"pepgate/internal/pep/models"
	dErrors "pepgate/pkg/domain-errors"
)

// StepClient fetches the caller's onboarding position.
type StepClient interface {
	CurrentStep(ctx context.Context, bearerToken string) (models.OnboardingStep, error)
}

// HTTPStepClient queries the onboarding-steps service with the caller's own
// session token, so authorization decisions stay with that service.
type HTTPStepClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPStepClient(baseURL string, client *http.Client, logger *slog.Logger) *HTTPStepClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStepClient{baseURL: baseURL, client: client, logger: logger}
}

type stepResponse struct {
	Result struct {
		CurrentStepBR string `json:"current_onboarding_step_br"`
		CurrentStepUS string `json:"current_onboarding_step_us"`
	} `json:"result"`
}

// CurrentStep returns the user's per-region onboarding position. Failures are
// internal errors: the step service being down is not a statement about the
// user's eligibility.
func (c *HTTPStepClient) CurrentStep(ctx context.Context, bearerToken string) (models.OnboardingStep, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/onboarding/current-step", nil)
	if err != nil {
		return models.OnboardingStep{}, dErrors.Wrap(dErrors.CodeInternal, "build step request", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "step service unreachable", "error", err)
		return models.OnboardingStep{}, dErrors.Wrap(dErrors.CodeInternal, "onboarding step lookup failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "step service returned error", "status", resp.StatusCode)
		return models.OnboardingStep{}, dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("onboarding step lookup failed with status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.OnboardingStep{}, dErrors.Wrap(dErrors.CodeInternal, "read step response", err)
	}
	var decoded stepResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return models.OnboardingStep{}, dErrors.Wrap(dErrors.CodeInternal, "decode step response", err)
	}

	return models.OnboardingStep{
		StepBR: decoded.Result.CurrentStepBR,
		StepUS: decoded.Result.CurrentStepUS,
	}, nil
}
