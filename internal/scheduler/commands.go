package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"PoolKeeper/internal/model"
	"PoolKeeper/internal/notifier"
	"PoolKeeper/internal/pool"
)

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText
	}
	// Telegram appends @botname in group chats
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/sleep", "/start":
		return s.cmdSleep(args)
	case "/drain":
		return s.cmdDrain(args)
	case "/recharge":
		return s.cmdRecharge(args)
	case "/exercise":
		return s.cmdExercise(args)
	case "/done":
		return s.cmdDone(args)
	case "/level":
		reply, err := s.levelReport(s.now())
		if err != nil {
			return noDay(err)
		}
		return reply
	case "/habits":
		recs, level, err := s.Tracker.Recommendations(s.now())
		if err != nil {
			return noDay(err)
		}
		return notifier.FormatHabits(recs, level)
	default:
		return notifier.HelpText
	}
}

func (s *Scheduler) cmdSleep(args []string) string {
	now := s.now()
	hours := s.Day.SleepHours
	quality := s.Day.SleepQuality

	if len(args) > 0 {
		h, err := strconv.ParseFloat(args[0], 64)
		if err != nil || h < 0 || h > 24 {
			return "Usage: /sleep <hours> [quality]"
		}
		hours = h
	}
	if len(args) > 1 {
		quality = model.SleepQuality(strings.ToLower(args[1]))
		if !quality.Valid() {
			return fmt.Sprintf("Unknown sleep quality %q. Use high_rem, normal_rem, low_rem or fragmented.", args[1])
		}
	}

	// A correction later in the day keeps the original wake time.
	wake := now
	if today := s.Tracker.Today(); today != nil && today.Date == pool.DateKey(now) && !today.Metadata.WakeTime.IsZero() {
		wake = today.Metadata.WakeTime
	}
	return s.startDay(hours, quality, wake, now)
}

func (s *Scheduler) cmdDrain(args []string) string {
	if len(args) < 2 {
		return "Usage: /drain <app> <minutes>"
	}
	minutes, err := strconv.ParseFloat(args[len(args)-1], 64)
	if err != nil {
		return "Usage: /drain <app> <minutes>"
	}
	name := strings.Join(args[:len(args)-1], " ")

	now := s.now()
	ev, err := s.Tracker.LogDrain(name, minutes, now)
	if err != nil {
		return noDay(err)
	}
	if err := s.Recorder.RecordDrain(pool.DateKey(now), &ev); err != nil {
		s.logger.Errorw("record drain", "error", err)
	}
	return notifier.FormatDrain(ev, s.Tracker.Today().CurrentLevel, now)
}

func (s *Scheduler) cmdRecharge(args []string) string {
	var in pool.RechargeInput
	if n := len(args); n > 0 && strings.HasSuffix(args[n-1], "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(args[n-1], "%"))
		if err != nil {
			return "Override must look like 10%"
		}
		override := model.Percent(pct)
		in.Override = &override
		args = args[:n-1]
	}

	switch len(args) {
	case 1:
		in.Type = strings.ToLower(args[0])
	case 2:
		in.Category, in.Intensity = strings.ToLower(args[0]), strings.ToLower(args[1])
	default:
		return "Usage: /recharge <type> [NN%] or /recharge <category> <intensity>"
	}

	now := s.now()
	ev, err := s.Tracker.LogRecharge(in, now)
	if err != nil {
		return noDay(err)
	}
	if ev.Error == "" {
		if err := s.Recorder.RecordRecharge(pool.DateKey(now), &ev); err != nil {
			s.logger.Errorw("record recharge", "error", err)
		}
	}
	return notifier.FormatRecharge(ev, s.Tracker.Today().CurrentLevel)
}

// cmdExercise logs the workout as a recharge and as a session counted towards
// capacity expansion.
func (s *Scheduler) cmdExercise(args []string) string {
	kind := "moderate"
	if len(args) > 0 {
		kind = strings.ToLower(args[0])
	}
	if kind != "moderate" && kind != "intense" {
		return "Usage: /exercise [moderate|intense]"
	}

	now := s.now()
	ev, err := s.Tracker.LogRecharge(pool.RechargeInput{Type: "exercise_" + kind}, now)
	if err != nil {
		return noDay(err)
	}
	if err := s.Recorder.RecordRecharge(pool.DateKey(now), &ev); err != nil {
		s.logger.Errorw("record recharge", "error", err)
	}
	if err := s.Recorder.RecordExercise(&model.ExerciseSession{At: now, Kind: kind}); err != nil {
		s.logger.Errorw("record exercise", "error", err)
	}
	return notifier.FormatRecharge(ev, s.Tracker.Today().CurrentLevel)
}

func (s *Scheduler) cmdDone(args []string) string {
	if len(args) != 1 {
		return "Usage: /done <habit-id>"
	}
	if err := s.Tracker.CompleteHabit(args[0]); err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	recs, level, err := s.Tracker.Recommendations(s.now())
	if err != nil {
		return "✅ Marked done"
	}
	return "✅ Marked done\n\n" + notifier.FormatHabits(recs, level)
}
