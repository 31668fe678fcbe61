package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pepgate/internal/pep/models"
	"pepgate/internal/pep/service"
	"pepgate/internal/pep/service/mocks"
	dErrors "pepgate/pkg/domain-errors"
)

const expectedStep = "politically_exposed"

var (
	correctStep = models.OnboardingStep{StepBR: "finished", StepUS: "politically_exposed"}
	wrongStep   = models.OnboardingStep{StepBR: "finished", StepUS: "some_step"}
)

type fixture struct {
	steps     *mocks.MockStepClient
	publisher *mocks.MockPublisher
	store     *mocks.MockStore
	service   *service.Service
}

func newFixture(t *testing.T, flags service.Flags) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		steps:     mocks.NewMockStepClient(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		store:     mocks.NewMockStore(ctrl),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service = service.New(f.steps, f.publisher, f.store, flags, logger, nil)
	return f
}

func defaultFlags() service.Flags {
	return service.Flags{RequireSuitability: true, ExpectedStep: expectedStep}
}

func exposedInput() service.UpdateInput {
	return service.UpdateInput{
		Token:       "session-token",
		Identity:    models.Identity{UniqueID: "user-1"},
		Declaration: models.Declaration{IsExposed: true, ExposedNames: []string{"Jane Doe"}},
		Device: &models.DeviceContext{
			DeviceInfo: map[string]any{"precision": float64(1)},
			DeviceID:   "device-9",
		},
	}
}

func TestUpdateSuccess(t *testing.T) {
	f := newFixture(t, defaultFlags())
	input := exposedInput()

	wantRecord := models.Record{
		UniqueID:     "user-1",
		IsExposed:    true,
		ExposedNames: []string{"Jane Doe"},
		DeviceInfo:   map[string]any{"precision": float64(1)},
		DeviceID:     "device-9",
	}

	gomock.InOrder(
		f.steps.EXPECT().CurrentStep(gomock.Any(), "session-token").Return(correctStep, nil),
		f.store.EXPECT().FindSuitability(gomock.Any(), "user-1").Return(true, nil),
		f.publisher.EXPECT().Publish(gomock.Any(), wantRecord).Return(true, nil),
		f.store.EXPECT().UpdateDeclaration(gomock.Any(), wantRecord).Return(nil),
	)

	err := f.service.Update(context.Background(), input)
	require.NoError(t, err)
}

func TestUpdateWrongStepStopsBeforeAnyOtherCall(t *testing.T) {
	f := newFixture(t, defaultFlags())

	// Only the step read is expected: suitability, publish and update must
	// never be invoked on a step mismatch.
	f.steps.EXPECT().CurrentStep(gomock.Any(), gomock.Any()).Return(wrongStep, nil)

	err := f.service.Update(context.Background(), exposedInput())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStep))
}

func TestUpdateMissingSuitabilityStopsBeforeWrites(t *testing.T) {
	f := newFixture(t, defaultFlags())

	gomock.InOrder(
		f.steps.EXPECT().CurrentStep(gomock.Any(), gomock.Any()).Return(correctStep, nil),
		f.store.EXPECT().FindSuitability(gomock.Any(), "user-1").Return(false, nil),
	)

	err := f.service.Update(context.Background(), exposedInput())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeSuitabilityRequired))
}

func TestUpdateSuitabilityReadFailureIsInternal(t *testing.T) {
	f := newFixture(t, defaultFlags())

	gomock.InOrder(
		f.steps.EXPECT().CurrentStep(gomock.Any(), gomock.Any()).Return(correctStep, nil),
		f.store.EXPECT().FindSuitability(gomock.Any(), "user-1").Return(false, errors.New("connection reset")),
	)

	err := f.service.Update(context.Background(), exposedInput())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestUpdateSoftNackPreventsStoreUpdate(t *testing.T) {
	f := newFixture(t, defaultFlags())

	// Publish returning (false, nil) is a failure like any other: the store
	// update must never run.
	gomock.InOrder(
		f.steps.EXPECT().CurrentStep(gomock.Any(), gomock.Any()).Return(correctStep, nil),
		f.store.EXPECT().FindSuitability(gomock.Any(), "user-1").Return(true, nil),
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(false, nil),
	)

	err := f.service.Update(context.Background(), exposedInput())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestUpdatePublishErrorPreventsStoreUpdate(t *testing.T) {
	f := newFixture(t, defaultFlags())

	gomock.InOrder(
		f.steps.EXPECT().CurrentStep(gomock.Any(), gomock.Any()).Return(correctStep, nil),
		f.store.EXPECT().FindSuitability(gomock.Any(), "user-1").Return(true, nil),
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(false, errors.New("broker down")),
	)

	err := f.service.Update(context.Background(), exposedInput())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestUpdateStoreFailureAfterPublishIsInternal(t *testing.T) {
	f := newFixture(t, defaultFlags())

	gomock.InOrder(
		f.steps.EXPECT().CurrentStep(gomock.Any(), gomock.Any()).Return(correctStep, nil),
		f.store.EXPECT().FindSuitability(gomock.Any(), "user-1").Return(true, nil),
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(true, nil),
		f.store.EXPECT().UpdateDeclaration(gomock.Any(), gomock.Any()).Return(errors.New("write timeout")),
	)

	err := f.service.Update(context.Background(), exposedInput())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestUpdateStepClientFailurePropagates(t *testing.T) {
	f := newFixture(t, defaultFlags())

	f.steps.EXPECT().CurrentStep(gomock.Any(), gomock.Any()).
		Return(models.OnboardingStep{}, dErrors.New(dErrors.CodeInternal, "step service down"))

	err := f.service.Update(context.Background(), exposedInput())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestUpdateVariantWithoutSuitabilityCheck(t *testing.T) {
	f := newFixture(t, service.Flags{RequireSuitability: false, ExpectedStep: expectedStep})
	input := exposedInput()
	input.Device = nil

	wantRecord := models.Record{
		UniqueID:     "user-1",
		IsExposed:    true,
		ExposedNames: []string{"Jane Doe"},
	}

	gomock.InOrder(
		f.steps.EXPECT().CurrentStep(gomock.Any(), "session-token").Return(correctStep, nil),
		f.publisher.EXPECT().Publish(gomock.Any(), wantRecord).Return(true, nil),
		f.store.EXPECT().UpdateDeclaration(gomock.Any(), wantRecord).Return(nil),
	)

	require.NoError(t, f.service.Update(context.Background(), input))
}

func TestUpdateWritesSurviveCanceledRequestContext(t *testing.T) {
	f := newFixture(t, service.Flags{RequireSuitability: false, ExpectedStep: expectedStep})

	ctx, cancel := context.WithCancel(context.Background())

	gomock.InOrder(
		f.steps.EXPECT().CurrentStep(gomock.Any(), gomock.Any()).Return(correctStep, nil),
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(publishCtx context.Context, _ models.Record) (bool, error) {
				// Simulate the client disconnecting mid-publish: the write
				// context must not observe the cancellation.
				cancel()
				require.NoError(t, publishCtx.Err())
				return true, nil
			}),
		f.store.EXPECT().UpdateDeclaration(gomock.Any(), gomock.Any()).DoAndReturn(
			func(updateCtx context.Context, _ models.Record) error {
				require.NoError(t, updateCtx.Err())
				return nil
			}),
	)

	input := exposedInput()
	input.Device = nil
	require.NoError(t, f.service.Update(ctx, input))
}
