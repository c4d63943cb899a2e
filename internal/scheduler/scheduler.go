package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"PoolKeeper/internal/collector"
	"PoolKeeper/internal/model"
	"PoolKeeper/internal/notifier"
	"PoolKeeper/internal/pool"
	"PoolKeeper/internal/recorder"
	"PoolKeeper/internal/tracker"
)

// Sender delivers a formatted message to the user.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// DayConfig controls the automatic morning rollover.
type DayConfig struct {
	WakeHour     int
	SleepHours   float64
	SleepQuality model.SleepQuality
	Location     *time.Location
}

// Scheduler manages all cron tasks and user commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Tracker   *tracker.Manager
	Notifier  Sender
	Recorder  recorder.Recorder
	Day       DayConfig
	Ctx       context.Context

	logger *zap.SugaredLogger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tm *tracker.Manager, sender Sender,
	rec recorder.Recorder, day DayConfig, logger *zap.SugaredLogger) *Scheduler {
	if day.Location == nil {
		day.Location = time.Local
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(day.Location)),
		Collector: col,
		Tracker:   tm,
		Notifier:  sender,
		Recorder:  rec,
		Day:       day,
		Ctx:       ctx,
		logger:    logger,
	}
}

// RegisterAll registers the morning, check-in and weekly tasks.
func (s *Scheduler) RegisterAll(morningCron, checkinCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(morningCron, s.morningTask); err != nil {
		return fmt.Errorf("register morning task: %w", err)
	}
	if _, err := s.Cron.AddFunc(checkinCron, s.checkinTask); err != nil {
		return fmt.Errorf("register check-in task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Infow("scheduler started", "entries", len(s.Cron.Entries()))
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Infow("scheduler stopped")
}

// RunWeeklyNow executes the weekly reassessment immediately.
func (s *Scheduler) RunWeeklyNow() {
	s.weeklyTask()
}

func (s *Scheduler) now() time.Time {
	return s.Tracker.Engine().Now().In(s.Day.Location)
}

func (s *Scheduler) wakeTime(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), s.Day.WakeHour, 0, 0, 0, s.Day.Location)
}

// morningTask starts the day with the default sleep report unless the user
// already reported sleep today.
func (s *Scheduler) morningTask() {
	now := s.now()
	if s.Tracker.HasDay(pool.DateKey(now)) {
		s.logger.Infow("morning task skipped, day already started")
		return
	}
	s.logger.Infow("running morning task")
	s.trySend(s.startDay(s.Day.SleepHours, s.Day.SleepQuality, s.wakeTime(now), now))
}

func (s *Scheduler) checkinTask() {
	now := s.now()
	reply, err := s.levelReport(now)
	if err != nil {
		s.logger.Warnw("check-in skipped", "error", err)
		return
	}
	s.trySend(reply)
}

// weeklyTask reassesses the tolerance tier from recorded usage and the
// capacity expansion from exercise history. Both apply from the next morning.
func (s *Scheduler) weeklyTask() {
	s.logger.Infow("running weekly reassessment")
	now := s.now()
	engine := s.Tracker.Engine()

	signals, err := s.Collector.UsageSignals(now)
	if err != nil {
		s.logger.Errorw("weekly usage signals", "error", err)
		return
	}
	history, err := s.Collector.ExerciseHistory(now, engine.Config().Capacity.Periods)
	if err != nil {
		s.logger.Errorw("weekly exercise history", "error", err)
		return
	}

	assessment := engine.AssessDysregulationTier(signals)
	expansion := engine.CapacityExpansion(history, now)
	s.Tracker.SetAssessment(assessment.Tier, expansion)
	s.logger.Infow("reassessed", "tier", assessment.Tier, "score", assessment.Score, "expansion", expansion)

	s.trySend(notifier.FormatAssessment(assessment, signals, expansion))
}

// startDay runs the rollover, records the closed day and returns the briefing.
func (s *Scheduler) startDay(hours float64, quality model.SleepQuality, wake, now time.Time) string {
	ro := s.Tracker.StartDay(hours, quality, wake)

	var msg string
	if ro.Previous != nil {
		if err := s.Recorder.RecordDay(&recorder.DaySnapshot{
			State:           ro.Previous,
			FinalLevel:      ro.PreviousFinal,
			HabitsCompleted: ro.HabitsCompleted,
			HabitsTotal:     ro.HabitsTotal,
			Streak:          ro.Streak,
		}); err != nil {
			s.logger.Errorw("record day", "date", ro.Previous.Date, "error", err)
		}
		msg = notifier.FormatDayClose(ro.Previous, ro.PreviousFinal, ro.HabitsCompleted, ro.HabitsTotal, ro.Streak) + "\n"
	}

	recs, _, err := s.Tracker.Recommendations(now)
	if err != nil {
		s.logger.Errorw("recommendations", "error", err)
	}
	return msg + notifier.FormatMorning(ro.Today, ro.Streak, recs)
}

func (s *Scheduler) levelReport(now time.Time) (string, error) {
	bd, err := s.Tracker.Current(now)
	if err != nil {
		return "", err
	}
	recs, level, err := s.Tracker.Recommendations(now)
	if err != nil {
		return "", err
	}
	return notifier.FormatBreakdown(bd) + "\n" + notifier.FormatHabits(recs, level), nil
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.logger.Errorw("send notification", "error", err)
	}
}

func noDay(err error) string {
	if errors.Is(err, tracker.ErrNoDay) {
		return "No pool yet today. Report your sleep first: /sleep <hours>"
	}
	return fmt.Sprintf("❌ %v", err)
}
