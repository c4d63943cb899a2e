package tracker

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"PoolKeeper/internal/model"
	"PoolKeeper/internal/pool"
	"PoolKeeper/internal/recommend"
)

// ErrNoDay is returned by operations that need today's pool before it exists.
var ErrNoDay = errors.New("day not started")

// Rollover describes the transition performed by StartDay.
type Rollover struct {
	Previous        *model.PoolState // nil for a new user or a restarted day
	PreviousFinal   model.Percent
	HabitsCompleted int
	HabitsTotal     int
	Streak          int
	Today           *model.PoolState
}

// Manager owns today's PoolState for the host. Each logging operation swaps
// in a new state built by the engine, so readers holding an older snapshot
// are never affected.
type Manager struct {
	mu       sync.Mutex
	rec      *Record
	filePath string
	habits   []model.Habit
	engine   atomic.Pointer[pool.Engine]
	logger   *zap.SugaredLogger
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string, engine *pool.Engine, habits []model.Habit, logger *zap.SugaredLogger) (*Manager, error) {
	rec, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if rec.Tier == "" {
		rec.Tier = model.TierHealthy
	}

	m := &Manager{rec: rec, filePath: filePath, habits: habits, logger: logger}
	m.engine.Store(engine)
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Engine returns the engine currently in use.
func (m *Manager) Engine() *pool.Engine { return m.engine.Load() }

// SetEngine swaps the engine, e.g. after a catalog reload. Already logged
// events keep the magnitudes they were resolved with.
func (m *Manager) SetEngine(e *pool.Engine) { m.engine.Store(e) }

// Today returns the current pool snapshot, or nil before the first StartDay.
func (m *Manager) Today() *model.PoolState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec.Pool
}

// GetRecord returns a copy of the persisted record.
func (m *Manager) GetRecord() Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := *m.rec
	rec.CompletedHabits = slices.Clone(m.rec.CompletedHabits)
	return rec
}

// HasDay reports whether today's pool for date already exists.
func (m *Manager) HasDay(date string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec.Pool != nil && m.rec.Pool.Date == date
}

// StartDay runs the morning calculation. On a new date the previous day is
// closed out: streak and yesterday-complete are derived from its habits when
// it was yesterday, and reset otherwise.
// Calling it again on the same date recomputes the morning level and keeps
// everything already logged.
func (m *Manager) StartDay(hours float64, quality model.SleepQuality, wake time.Time) Rollover {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.engine.Load()
	date := pool.DateKey(wake)
	prev := m.rec.Pool
	ro := Rollover{HabitsTotal: len(m.habits)}

	sameDay := prev != nil && prev.Date == date
	if prev != nil && !sameDay {
		ro.Previous = prev
		ro.PreviousFinal = e.CurrentPool(prev, wake)
		ro.HabitsCompleted = m.completedCount()
		// a gap of one or more missed days breaks the streak
		consecutive := prev.Date == pool.DateKey(wake.AddDate(0, 0, -1))
		m.rec.YesterdayComplete = consecutive && len(m.habits) > 0 && ro.HabitsCompleted == len(m.habits)
		if m.rec.YesterdayComplete {
			m.rec.Streak++
		} else {
			m.rec.Streak = 0
		}
		m.rec.CompletedHabits = nil
	}

	today := e.NewDay(prev, pool.SleepInputs{
		Hours:             hours,
		Quality:           quality,
		YesterdayComplete: m.rec.YesterdayComplete,
		StreakDays:        m.rec.Streak,
		Tier:              m.rec.Tier,
		CapacityExpansion: m.rec.CapacityExpansion,
	}, wake)
	if sameDay {
		today.DrainActivities = prev.DrainActivities
		today.RechargeActivities = prev.RechargeActivities
		today.PendingCrash = prev.PendingCrash
		today.CurrentLevel = e.CurrentPool(today, wake)
	}

	m.rec.Pool = today
	ro.Streak = m.rec.Streak
	ro.Today = today
	m.persist("start day")
	m.logger.Infow("day started", "date", date, "morning", today.MorningLevel, "streak", m.rec.Streak)
	return ro
}

// LogDrain appends a draining activity to today's pool.
func (m *Manager) LogDrain(name string, minutes float64, now time.Time) (model.DrainEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rec.Pool == nil {
		return model.DrainEvent{}, ErrNoDay
	}
	next, ev := m.engine.Load().AppendDrain(m.rec.Pool, name, minutes, now)
	m.rec.Pool = next
	m.persist("log drain")
	return ev, nil
}

// LogRecharge appends a recharging activity to today's pool. An unresolved
// activity is returned with its Error set and is not stored.
func (m *Manager) LogRecharge(in pool.RechargeInput, now time.Time) (model.RechargeEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rec.Pool == nil {
		return model.RechargeEvent{}, ErrNoDay
	}
	next, ev := m.engine.Load().AppendRecharge(m.rec.Pool, in, now)
	m.rec.Pool = next
	m.persist("log recharge")
	return ev, nil
}

// CompleteHabit marks a configured habit as done today.
func (m *Manager) CompleteHabit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.ContainsFunc(m.habits, func(h model.Habit) bool { return h.ID == id }) {
		return fmt.Errorf("unknown habit %q", id)
	}
	if !slices.Contains(m.rec.CompletedHabits, id) {
		m.rec.CompletedHabits = append(m.rec.CompletedHabits, id)
		m.persist("complete habit")
	}
	return nil
}

// SetAssessment stores the tier and expansion used from the next StartDay on.
func (m *Manager) SetAssessment(tier model.DysregulationTier, expansion model.Fraction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec.Tier = tier
	m.rec.CapacityExpansion = expansion
	m.persist("set assessment")
}

// Current explains today's level at now.
func (m *Manager) Current(now time.Time) (model.Breakdown, error) {
	st := m.Today()
	if st == nil {
		return model.Breakdown{}, ErrNoDay
	}
	return m.engine.Load().Explain(st, now), nil
}

// Recommendations orders the configured habits for the level at now.
func (m *Manager) Recommendations(now time.Time) ([]model.Recommendation, model.Percent, error) {
	b, err := m.Current(now)
	if err != nil {
		return nil, 0, err
	}

	m.mu.Lock()
	habits := make([]model.Habit, len(m.habits))
	for i, h := range m.habits {
		h.Completed = slices.Contains(m.rec.CompletedHabits, h.ID)
		habits[i] = h
	}
	m.mu.Unlock()

	return recommend.Order(habits, b.Level), b.Level, nil
}

func (m *Manager) completedCount() int {
	n := 0
	for _, h := range m.habits {
		if slices.Contains(m.rec.CompletedHabits, h.ID) {
			n++
		}
	}
	return n
}

func (m *Manager) persist(op string) {
	if err := m.save(); err != nil {
		m.logger.Errorw("failed to save pool state", "op", op, "error", err)
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.rec)
}
