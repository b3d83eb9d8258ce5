package walkthrough

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/google/uuid"
)

// Phase is the walkthrough state machine phase.
type Phase string

const (
	PhasePreAssessment  Phase = "pre-assessment"
	PhaseExecution      Phase = "execution"
	PhasePostAssessment Phase = "post-assessment"
	PhaseDone           Phase = "done"
)

// FallbackDurationSeconds applies when neither an authored override nor a
// catalog duration is available for a posture.
const FallbackDurationSeconds = 120

var (
	ErrEmptySequence        = errors.New("series resolves to an empty posture sequence")
	ErrPreIntensityRequired = errors.New("pre-session intensity is required")
	ErrNotExecuting         = errors.New("walkthrough is not in the execution phase")
	ErrNotAssessing         = errors.New("walkthrough is not in the post-assessment phase")
	ErrAssessmentIncomplete = errors.New("post-session intensity and comments are required")
)

// EffectiveDuration resolves the seconds for one sequence position: the
// authored override when present, else the catalog duration, else the
// fallback.
func EffectiveDuration(override, catalog int) int {
	if override > 0 {
		return override
	}
	if catalog > 0 {
		return catalog
	}
	return FallbackDurationSeconds
}

// Slot is one resolved position of the walkthrough sequence.
type Slot struct {
	Posture         *domain.Posture
	DurationSeconds int
}

// Report is the single session record a completed walkthrough emits.
type Report struct {
	SeriesID        uuid.UUID
	PreIntensity    domain.Intensity
	PostIntensity   domain.Intensity
	Comments        string
	DurationMinutes int
}

// Engine walks a patient through a series one timed posture at a time. It
// performs no I/O of its own; the submit callback is the only side effect.
// All methods are safe to call concurrently with a running Ticker.
type Engine struct {
	series *domain.Series
	slots  []Slot

	phase         Phase
	currentIndex  int
	timeRemaining int
	isPaused      bool
	preIntensity  domain.Intensity
	postIntensity domain.Intensity
	comments      string

	mu sync.Mutex
}

// NewEngine resolves the series against the loaded posture catalog. Sequence
// positions whose posture id is absent from the catalog are dropped,
// silently shortening the walkthrough.
func NewEngine(series *domain.Series, catalog []*domain.Posture) (*Engine, error) {
	postureIDs, err := series.PostureIDList()
	if err != nil {
		return nil, err
	}
	durations, err := series.DurationList()
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Posture, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	slots := make([]Slot, 0, len(postureIDs))
	for i, id := range postureIDs {
		posture, ok := byID[id]
		if !ok {
			continue
		}
		override := 0
		if i < len(durations) {
			override = durations[i]
		}
		slots = append(slots, Slot{
			Posture:         posture,
			DurationSeconds: EffectiveDuration(override, posture.DurationSeconds),
		})
	}
	if len(slots) == 0 {
		return nil, ErrEmptySequence
	}

	return &Engine{
		series: series,
		slots:  slots,
		phase:  PhasePreAssessment,
	}, nil
}

func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *Engine) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentIndex
}

func (e *Engine) TimeRemaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeRemaining
}

func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isPaused
}

func (e *Engine) Len() int {
	return len(e.slots)
}

// CurrentSlot returns the slot being executed, or false outside execution.
func (e *Engine) CurrentSlot() (Slot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseExecution {
		return Slot{}, false
	}
	return e.slots[e.currentIndex], true
}

// Progress reports the percentage of postures completed, not started: during
// execution of slot i the value reflects the i postures already finished.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return float64(e.currentIndex) / float64(len(e.slots)) * 100
}

// SetPreIntensity records how the patient feels before starting.
func (e *Engine) SetPreIntensity(intensity domain.Intensity) error {
	if !intensity.Valid() {
		return domain.ErrInvalidIntensity
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhasePreAssessment {
		return ErrNotAssessing
	}
	e.preIntensity = intensity
	return nil
}

// Start leaves pre-assessment and seeds the first posture's countdown. It
// fails unless a pre-session intensity has been chosen.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhasePreAssessment {
		return ErrNotAssessing
	}
	if e.preIntensity == "" {
		return ErrPreIntensityRequired
	}
	e.phase = PhaseExecution
	e.currentIndex = 0
	e.timeRemaining = e.slots[0].DurationSeconds
	e.isPaused = false
	return nil
}

// Tick is the once-per-second pulse. It decrements the countdown only while
// executing and unpaused; hitting zero auto-advances. Outside those
// conditions it is a no-op, so a stale tick can never corrupt state.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseExecution || e.isPaused || e.timeRemaining <= 0 {
		return
	}
	e.timeRemaining--
	if e.timeRemaining == 0 {
		e.advance()
	}
}

// Next is the manual advance; allowed at any point during execution
// regardless of the countdown.
func (e *Engine) Next() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseExecution {
		return ErrNotExecuting
	}
	e.advance()
	return nil
}

// advance moves to the next slot or, past the last one, to post-assessment.
// Callers must hold e.mu.
func (e *Engine) advance() {
	nextIndex := e.currentIndex + 1
	if nextIndex >= len(e.slots) {
		e.currentIndex = nextIndex
		e.timeRemaining = 0
		e.phase = PhasePostAssessment
		return
	}
	e.currentIndex = nextIndex
	e.timeRemaining = e.slots[nextIndex].DurationSeconds
	e.isPaused = false
}

// TogglePause flips the paused flag; the countdown and position are
// untouched.
func (e *Engine) TogglePause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseExecution {
		return ErrNotExecuting
	}
	e.isPaused = !e.isPaused
	return nil
}

// SetPostIntensity records how the patient feels after the session.
func (e *Engine) SetPostIntensity(intensity domain.Intensity) error {
	if !intensity.Valid() {
		return domain.ErrInvalidIntensity
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhasePostAssessment {
		return ErrNotAssessing
	}
	e.postIntensity = intensity
	return nil
}

// SetComments stores the mandatory session comment.
func (e *Engine) SetComments(comments string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhasePostAssessment {
		return ErrNotAssessing
	}
	e.comments = comments
	return nil
}

// CanSubmit reports whether the post-assessment inputs are complete.
func (e *Engine) CanSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase == PhasePostAssessment &&
		e.postIntensity != "" &&
		strings.TrimSpace(e.comments) != ""
}

// Submit validates the post-assessment inputs and hands the session report
// to the callback. A callback failure leaves the engine in post-assessment
// with all inputs intact so the submission can be retried.
func (e *Engine) Submit(ctx context.Context, submit func(context.Context, Report) error) (*Report, error) {
	e.mu.Lock()
	if e.phase != PhasePostAssessment {
		e.mu.Unlock()
		return nil, ErrNotAssessing
	}
	if e.postIntensity == "" || strings.TrimSpace(e.comments) == "" {
		e.mu.Unlock()
		return nil, ErrAssessmentIncomplete
	}
	report := Report{
		SeriesID:        e.series.ID,
		PreIntensity:    e.preIntensity,
		PostIntensity:   e.postIntensity,
		Comments:        e.comments,
		DurationMinutes: e.series.EstimatedDurationMinutes,
	}
	e.mu.Unlock()

	if err := submit(ctx, report); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.phase = PhaseDone
	e.mu.Unlock()
	return &report, nil
}
