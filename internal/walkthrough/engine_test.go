package walkthrough

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newTestSeries(t *testing.T, postureIDs []uuid.UUID, durations []int) *domain.Series {
	t.Helper()

	ids, err := json.Marshal(postureIDs)
	require.NoError(t, err)
	if durations == nil {
		durations = []int{}
	}
	durs, err := json.Marshal(durations)
	require.NoError(t, err)

	return &domain.Series{
		ID:                       uuid.New(),
		Name:                     "Serie de prueba",
		EstimatedDurationMinutes: 12,
		PostureIDs:               datatypes.JSON(ids),
		PostureDurations:         datatypes.JSON(durs),
	}
}

func newTestCatalog(ids []uuid.UUID, catalogDurations []int) []*domain.Posture {
	catalog := make([]*domain.Posture, len(ids))
	for i, id := range ids {
		catalog[i] = &domain.Posture{
			ID:              id,
			SanskritName:    "Asana",
			SpanishName:     "Postura",
			DurationSeconds: catalogDurations[i],
		}
	}
	return catalog
}

// startedEngine builds a two-posture engine and drives it into execution.
func startedEngine(t *testing.T, durations []int) *Engine {
	t.Helper()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	catalog := newTestCatalog(ids, []int{90, 90})
	engine, err := NewEngine(newTestSeries(t, ids, durations), catalog)
	require.NoError(t, err)

	require.NoError(t, engine.SetPreIntensity(domain.IntensityModerate))
	require.NoError(t, engine.Start())
	return engine
}

func TestEffectiveDuration(t *testing.T) {
	tests := []struct {
		name     string
		override int
		catalog  int
		expected int
	}{
		{"override wins", 45, 90, 45},
		{"catalog when no override", 0, 90, 90},
		{"fallback when neither", 0, 0, FallbackDurationSeconds},
		{"negative override ignored", -1, 60, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveDuration(tt.override, tt.catalog))
		})
	}
}

func TestNewEngineDropsUnknownPostures(t *testing.T) {
	known := uuid.New()
	unknown := uuid.New()
	catalog := newTestCatalog([]uuid.UUID{known}, []int{60})

	engine, err := NewEngine(newTestSeries(t, []uuid.UUID{unknown, known, unknown}, nil), catalog)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Len())
}

func TestNewEngineEmptySequence(t *testing.T) {
	_, err := NewEngine(newTestSeries(t, []uuid.UUID{uuid.New()}, nil), nil)
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestStartRequiresPreIntensity(t *testing.T) {
	ids := []uuid.UUID{uuid.New()}
	engine, err := NewEngine(newTestSeries(t, ids, nil), newTestCatalog(ids, []int{60}))
	require.NoError(t, err)

	assert.ErrorIs(t, engine.Start(), ErrPreIntensityRequired)
	assert.Equal(t, PhasePreAssessment, engine.Phase())

	require.NoError(t, engine.SetPreIntensity(domain.IntensityNone))
	require.NoError(t, engine.Start())
	assert.Equal(t, PhaseExecution, engine.Phase())
	assert.Equal(t, 0, engine.CurrentIndex())
	assert.Equal(t, 60, engine.TimeRemaining())
}

func TestSetPreIntensityRejectsInvalid(t *testing.T) {
	ids := []uuid.UUID{uuid.New()}
	engine, err := NewEngine(newTestSeries(t, ids, nil), newTestCatalog(ids, []int{60}))
	require.NoError(t, err)

	assert.ErrorIs(t, engine.SetPreIntensity("extreme"), domain.ErrInvalidIntensity)
}

func TestTickCountsDownAndAdvances(t *testing.T) {
	engine := startedEngine(t, []int{3, 30})

	engine.Tick()
	engine.Tick()
	assert.Equal(t, 1, engine.TimeRemaining())
	assert.Equal(t, 0, engine.CurrentIndex())

	// Reaching zero auto-advances to the next posture
	engine.Tick()
	assert.Equal(t, 1, engine.CurrentIndex())
	assert.Equal(t, 30, engine.TimeRemaining())
	assert.Equal(t, PhaseExecution, engine.Phase())
}

func TestTickIsNoOpWhilePaused(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})

	require.NoError(t, engine.TogglePause())
	engine.Tick()
	engine.Tick()
	assert.Equal(t, 30, engine.TimeRemaining())

	// Resuming picks up exactly where the countdown stopped
	require.NoError(t, engine.TogglePause())
	engine.Tick()
	assert.Equal(t, 29, engine.TimeRemaining())
}

func TestTickIsNoOpOutsideExecution(t *testing.T) {
	ids := []uuid.UUID{uuid.New()}
	engine, err := NewEngine(newTestSeries(t, ids, nil), newTestCatalog(ids, []int{60}))
	require.NoError(t, err)

	engine.Tick()
	assert.Equal(t, PhasePreAssessment, engine.Phase())
	assert.Equal(t, 0, engine.TimeRemaining())
}

func TestNextSkipsRemainingTime(t *testing.T) {
	engine := startedEngine(t, []int{300, 45})

	require.NoError(t, engine.Next())
	assert.Equal(t, 1, engine.CurrentIndex())
	assert.Equal(t, 45, engine.TimeRemaining())
}

func TestNextClearsPause(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})

	require.NoError(t, engine.TogglePause())
	require.NoError(t, engine.Next())
	assert.False(t, engine.IsPaused())
}

func TestLastPostureLeadsToPostAssessment(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})

	require.NoError(t, engine.Next())
	require.NoError(t, engine.Next())

	assert.Equal(t, PhasePostAssessment, engine.Phase())
	assert.Equal(t, 0, engine.TimeRemaining())
	assert.ErrorIs(t, engine.Next(), ErrNotExecuting)
	assert.ErrorIs(t, engine.TogglePause(), ErrNotExecuting)
}

func TestProgressCountsCompletedPostures(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})

	assert.InDelta(t, 0.0, engine.Progress(), 0.001)
	require.NoError(t, engine.Next())
	assert.InDelta(t, 50.0, engine.Progress(), 0.001)
	require.NoError(t, engine.Next())
	assert.InDelta(t, 100.0, engine.Progress(), 0.001)
}

func TestCurrentSlotOnlyDuringExecution(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})

	slot, ok := engine.CurrentSlot()
	require.True(t, ok)
	assert.Equal(t, 30, slot.DurationSeconds)

	require.NoError(t, engine.Next())
	require.NoError(t, engine.Next())
	_, ok = engine.CurrentSlot()
	assert.False(t, ok)
}

func TestSubmitRequiresCompleteAssessment(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})
	require.NoError(t, engine.Next())
	require.NoError(t, engine.Next())

	called := false
	submit := func(ctx context.Context, report Report) error {
		called = true
		return nil
	}

	_, err := engine.Submit(context.Background(), submit)
	assert.ErrorIs(t, err, ErrAssessmentIncomplete)

	require.NoError(t, engine.SetPostIntensity(domain.IntensityNone))
	_, err = engine.Submit(context.Background(), submit)
	assert.ErrorIs(t, err, ErrAssessmentIncomplete)

	require.NoError(t, engine.SetComments("   "))
	_, err = engine.Submit(context.Background(), submit)
	assert.ErrorIs(t, err, ErrAssessmentIncomplete)

	assert.False(t, called, "submit callback must not run before the assessment is complete")
	assert.False(t, engine.CanSubmit())
}

func TestSubmitReportContents(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})
	require.NoError(t, engine.Next())
	require.NoError(t, engine.Next())

	require.NoError(t, engine.SetPostIntensity(domain.IntensityIntense))
	require.NoError(t, engine.SetComments("me sentí muy bien"))
	assert.True(t, engine.CanSubmit())

	var got Report
	report, err := engine.Submit(context.Background(), func(ctx context.Context, r Report) error {
		got = r
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, domain.IntensityModerate, got.PreIntensity)
	assert.Equal(t, domain.IntensityIntense, got.PostIntensity)
	assert.Equal(t, "me sentí muy bien", got.Comments)
	assert.Equal(t, 12, got.DurationMinutes)
	assert.Equal(t, *report, got)
	assert.Equal(t, PhaseDone, engine.Phase())
}

func TestSubmitFailureKeepsAssessment(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})
	require.NoError(t, engine.Next())
	require.NoError(t, engine.Next())

	require.NoError(t, engine.SetPostIntensity(domain.IntensityNone))
	require.NoError(t, engine.SetComments("sin molestias"))

	submitErr := errors.New("server unavailable")
	_, err := engine.Submit(context.Background(), func(ctx context.Context, r Report) error {
		return submitErr
	})
	assert.ErrorIs(t, err, submitErr)

	// The failed submission leaves everything in place for a retry
	assert.Equal(t, PhasePostAssessment, engine.Phase())
	assert.True(t, engine.CanSubmit())

	report, err := engine.Submit(context.Background(), func(ctx context.Context, r Report) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "sin molestias", report.Comments)
	assert.Equal(t, PhaseDone, engine.Phase())
}

func TestSubmitAfterDoneRejected(t *testing.T) {
	engine := startedEngine(t, []int{30, 30})
	require.NoError(t, engine.Next())
	require.NoError(t, engine.Next())
	require.NoError(t, engine.SetPostIntensity(domain.IntensityNone))
	require.NoError(t, engine.SetComments("bien"))

	_, err := engine.Submit(context.Background(), func(ctx context.Context, r Report) error { return nil })
	require.NoError(t, err)

	_, err = engine.Submit(context.Background(), func(ctx context.Context, r Report) error { return nil })
	assert.ErrorIs(t, err, ErrNotAssessing)
}

func TestDurationResolutionPerSlot(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	catalog := newTestCatalog(ids, []int{90, 0, 75})

	// Slot 0 has an override, slot 1 falls through to the fallback, slot 2
	// uses its catalog duration.
	engine, err := NewEngine(newTestSeries(t, ids, []int{45, 0, 0}), catalog)
	require.NoError(t, err)

	require.NoError(t, engine.SetPreIntensity(domain.IntensityNone))
	require.NoError(t, engine.Start())
	assert.Equal(t, 45, engine.TimeRemaining())

	require.NoError(t, engine.Next())
	assert.Equal(t, FallbackDurationSeconds, engine.TimeRemaining())

	require.NoError(t, engine.Next())
	assert.Equal(t, 75, engine.TimeRemaining())
}
