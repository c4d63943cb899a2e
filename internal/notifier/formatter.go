package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"PoolKeeper/internal/model"
	"PoolKeeper/internal/recommend"
)

// HelpText lists the commands understood by the bot.
const HelpText = `Available commands:
• /sleep <hours> [high_rem|normal_rem|low_rem|fragmented]
• /drain <app> <minutes>
• /recharge <type> [NN%]  or  /recharge <category> <intensity>
• /exercise [moderate|intense]
• /done <habit-id>
• /level
• /habits`

func signedPct(f model.Fraction) string {
	return fmt.Sprintf("%+.1f%%", 100*float64(f))
}

func levelIcon(level model.Percent) string {
	switch recommend.Tier(level) {
	case recommend.TierHigh:
		return "🟢"
	case recommend.TierModerate:
		return "🟡"
	default:
		return "🔴"
	}
}

// FormatMorning formats the morning briefing for a freshly started day.
func FormatMorning(today *model.PoolState, streak int, recs []model.Recommendation) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌅 <b>PoolKeeper</b> | %s\n\n", today.Date))
	b.WriteString(fmt.Sprintf("%s Morning pool: <b>%d%%</b>\n", levelIcon(today.MorningLevel), today.MorningLevel))
	b.WriteString(fmt.Sprintf("Sleep: %.1fh (%s)\n", today.Metadata.SleepHours, today.Metadata.SleepQuality))
	if today.Metadata.Tier != model.TierHealthy {
		b.WriteString(fmt.Sprintf("Tolerance tier: %s\n", today.Metadata.Tier))
	}
	if today.Metadata.CapacityExpansion > 0 {
		b.WriteString(fmt.Sprintf("Capacity: %d%%\n", model.Ceiling(today.Metadata.CapacityExpansion).Percent()))
	}
	if streak > 0 {
		b.WriteString(fmt.Sprintf("🔥 %s day in a row\n", humanize.Ordinal(streak+1)))
	}
	if len(recs) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatHabits(recs, today.MorningLevel))
	}
	return b.String()
}

// FormatDayClose summarises a finished day.
func FormatDayClose(prev *model.PoolState, final model.Percent, done, total, streak int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📕 <b>%s closed</b>\n", prev.Date))
	b.WriteString(fmt.Sprintf("Pool %d%% → %d%%\n", prev.MorningLevel, final))
	b.WriteString(fmt.Sprintf("Drains: %d | Recharges: %d\n", len(prev.DrainActivities), len(prev.RechargeActivities)))
	b.WriteString(fmt.Sprintf("Habits: %d/%d", done, total))
	if total > 0 && done == total {
		b.WriteString(" ✅")
	}
	b.WriteString(fmt.Sprintf("\nStreak: %d\n", streak))
	return b.String()
}

// FormatBreakdown formats the current level term by term.
func FormatBreakdown(bd model.Breakdown) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>Current pool: %d%%</b>\n\n", levelIcon(bd.Level), bd.Level))
	for _, t := range bd.Terms {
		b.WriteString(fmt.Sprintf("  %s: %s (%s)\n", t.Name, signedPct(t.Value), t.Commentary))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  raw: %.1f%%", 100*float64(bd.Raw)))
	if bd.Raw.Percent() != bd.Level {
		b.WriteString(fmt.Sprintf(" (clamped to 0-%d%%)", bd.Ceiling.Percent()))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatHabits lists habits in recommended order.
func FormatHabits(recs []model.Recommendation, level model.Percent) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Habits</b> (%s energy)\n", recommend.Tier(level)))
	for _, r := range recs {
		mark := fmt.Sprintf("%d.", r.Priority)
		if r.Habit.Completed {
			mark = "✓"
		}
		b.WriteString(fmt.Sprintf("  %s %s [%s]: %s\n", mark, r.Habit.Name, r.Habit.ID, r.Advice))
	}
	return b.String()
}

// FormatDrain confirms a logged drain.
func FormatDrain(ev model.DrainEvent, level model.Percent, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📉 %s, %.0f min (%s, %s)\n", ev.Name, ev.Minutes, ev.Category, ev.Resolution))
	b.WriteString(fmt.Sprintf("Drain: %s", signedPct(-ev.Magnitude)))
	if ev.Multiplier > 1 {
		b.WriteString(fmt.Sprintf(" (repeat ×%.1f)", ev.Multiplier))
	}
	b.WriteString("\n")
	if ev.Crash.Amount > 0 {
		b.WriteString(fmt.Sprintf("Crash: %s, gone %s\n", signedPct(-ev.Crash.Amount),
			humanize.RelTime(ev.Crash.ExpiresAt, now, "ago", "from now")))
	}
	b.WriteString(fmt.Sprintf("%s Pool now %d%%\n", levelIcon(level), level))
	return b.String()
}

// FormatRecharge confirms a logged recharge, or explains why it was rejected.
func FormatRecharge(ev model.RechargeEvent, level model.Percent) string {
	if ev.Error != "" {
		return fmt.Sprintf("❓ Unknown recharge activity: %s\n", ev.Error)
	}
	name := ev.Type
	if name == "" {
		name = ev.Category + " " + ev.Intensity
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔋 %s: %s", name, signedPct(ev.Boost)))
	if ev.Mechanism != "" {
		b.WriteString(fmt.Sprintf(" (%s)", ev.Mechanism))
	}
	b.WriteString("\n")
	if ev.Requirements != "" {
		b.WriteString(fmt.Sprintf("Needs: %s\n", ev.Requirements))
	}
	b.WriteString(fmt.Sprintf("%s Pool now %d%%\n", levelIcon(level), level))
	return b.String()
}

// FormatAssessment formats the weekly tolerance and capacity reassessment.
func FormatAssessment(a model.Assessment, signals model.UsageSignals, expansion model.Fraction) string {
	var b strings.Builder
	b.WriteString("📊 <b>Weekly reassessment</b>\n\n")
	b.WriteString(fmt.Sprintf("Screen time: %.0f min/day (%s)\n", signals.AvgDailyScreenMinutes, signals.ScreenTimeTrend))
	b.WriteString(fmt.Sprintf("Main drain: %s\n", signals.PrimaryCategory))
	b.WriteString(fmt.Sprintf("Tier: <b>%s</b> (score %d)\n", a.Tier, a.Score))
	for _, r := range a.Reasons {
		b.WriteString(fmt.Sprintf("  • %s\n", r))
	}
	b.WriteString(fmt.Sprintf("Depletion ×%.2f | Recovery ×%.2f | Capacity ×%.2f\n",
		a.Multipliers.Depletion, a.Multipliers.Recovery, a.Multipliers.Capacity))
	b.WriteString(fmt.Sprintf("Capacity expansion: +%d%%\n", expansion.Percent()))
	return b.String()
}
