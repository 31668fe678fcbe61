// Package service orchestrates the PEP declaration update: eligibility
// checks, the durable event append, then the user store write, in that fixed
// order. The pipeline is strictly forward-progressing; every failure maps to
// exactly one typed outcome and nothing is retried or compensated here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pepgate/internal/pep/models"
	"pepgate/internal/platform/metrics"
	dErrors "pepgate/pkg/domain-errors"
	"pepgate/pkg/requestcontext"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks pepgate/internal/pep/service StepClient,Publisher,Store

var tracer = otel.Tracer("pepgate/internal/pep/service")

// StepClient reads the user's onboarding position.
type StepClient interface {
	CurrentStep(ctx context.Context, bearerToken string) (models.OnboardingStep, error)
}

// Publisher appends a record to the event log with an explicit ack. A soft
// (false, nil) return is a failure exactly like an error: the log is the
// audit trail of compliance-relevant declarations and there is no
// best-effort mode.
type Publisher interface {
	Publish(ctx context.Context, record models.Record) (acked bool, err error)
}

// Store is the mutable user record boundary.
type Store interface {
	FindSuitability(ctx context.Context, uniqueID string) (bool, error)
	UpdateDeclaration(ctx context.Context, record models.Record) error
}

// Flags configures which eligibility checks the pipeline runs. The
// historical deployments of this flow differed only in these switches.
type Flags struct {
	RequireSuitability bool
	ExpectedStep       string
}

// UpdateInput carries everything the pipeline needs for one run. Identity is
// always the verified token identity; Device is nil in variants that do not
// collect device context.
type UpdateInput struct {
	Token       string
	Identity    models.Identity
	Declaration models.Declaration
	Device      *models.DeviceContext
}

// Service is the update orchestrator.
type Service struct {
	steps     StepClient
	publisher Publisher
	store     Store
	flags     Flags
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func New(steps StepClient, publisher Publisher, store Store, flags Flags, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		steps:     steps,
		publisher: publisher,
		store:     store,
		flags:     flags,
		logger:    logger,
		metrics:   m,
	}
}

// Update runs the declaration pipeline:
//
//	CheckingStep -> CheckingSuitability -> Emitting -> Persisting -> Done
//
// with early exit to a typed failure from any stage. The step check strictly
// precedes the suitability check, and nothing is written anywhere until both
// pass. Once the event log has acked, a store failure still surfaces as an
// internal error: operators reconcile the store from the log, the log is
// never rolled back.
func (s *Service) Update(ctx context.Context, input UpdateInput) error {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "pep.declaration.update")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.unique_id", input.Identity.UniqueID),
		attribute.Bool("declaration.is_exposed", input.Declaration.IsExposed),
	)

	err := s.run(ctx, input)
	if err != nil {
		code := string(dErrors.CodeOf(err))
		span.SetStatus(codes.Error, code)
		span.RecordError(err)
		if s.metrics != nil {
			s.metrics.IncFailure(code)
		}
		return err
	}

	if s.metrics != nil {
		s.metrics.DeclarationsUpdated.Inc()
		s.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}
	return nil
}

func (s *Service) run(ctx context.Context, input UpdateInput) error {
	step, err := s.steps.CurrentStep(ctx, input.Token)
	if err != nil {
		return err
	}
	if !step.InStep(s.flags.ExpectedStep) {
		s.logger.WarnContext(ctx, "user in invalid onboarding step",
			"unique_id", input.Identity.UniqueID,
			"step_br", step.StepBR,
			"step_us", step.StepUS,
			"request_id", requestcontext.RequestID(ctx),
		)
		return dErrors.New(dErrors.CodeInvalidStep,
			fmt.Sprintf("step BR: %s | step US: %s", step.StepBR, step.StepUS))
	}

	record := models.NewRecord(input.Identity, input.Declaration, input.Device)

	if s.flags.RequireSuitability {
		suitability, err := s.store.FindSuitability(ctx, input.Identity.UniqueID)
		if err != nil {
			s.logger.ErrorContext(ctx, "suitability read failed",
				"unique_id", input.Identity.UniqueID,
				"error", err,
			)
			return dErrors.Wrap(dErrors.CodeInternal, "failed to read suitability profile", err)
		}
		if !suitability {
			s.logger.WarnContext(ctx, "user has no suitability profile",
				"unique_id", input.Identity.UniqueID,
			)
			return dErrors.New(dErrors.CodeSuitabilityRequired, "suitability profile required")
		}
	}

	// From here the writes are durable. Detach from the request context so a
	// client disconnect cannot cancel a publish or update once issued.
	writeCtx := context.WithoutCancel(ctx)

	acked, err := s.publisher.Publish(writeCtx, record)
	if err != nil || !acked {
		if s.metrics != nil {
			s.metrics.PublishFailures.Inc()
		}
		s.logger.ErrorContext(ctx, "event log publish failed",
			"unique_id", record.UniqueID,
			"acked", acked,
			"error", err,
		)
		if err != nil {
			return dErrors.Wrap(dErrors.CodeInternal, "event log publish failed", err)
		}
		return dErrors.New(dErrors.CodeInternal, "event log publish failed")
	}

	if err := s.store.UpdateDeclaration(writeCtx, record); err != nil {
		if s.metrics != nil {
			s.metrics.StoreFailures.Inc()
		}
		// The event is already in the log; operators reconcile from it.
		s.logger.ErrorContext(ctx, "store update failed after successful publish",
			"unique_id", record.UniqueID,
			"error", err,
		)
		return dErrors.Wrap(dErrors.CodeInternal, "store update failed", err)
	}

	s.logger.InfoContext(ctx, "declaration updated",
		"unique_id", record.UniqueID,
		"is_exposed", record.IsExposed,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}
