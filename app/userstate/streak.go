package userstate

import "time"

// carryStreak applies the day-boundary rule to the last stored tally. A
// tally from yesterday that met its goal extends the streak, a tally from
// yesterday that fell short keeps it, anything older resets it.
func carryStreak(streak int, last dailyTally, now time.Time) int {
	switch last.Date {
	case "", dayKey(now):
		return streak
	case dayKey(now.AddDate(0, 0, -1)):
		goal := last.Goal
		if goal <= 0 {
			goal = DefaultDailyGoal
		}
		if len(last.Stories) >= goal {
			return streak + 1
		}
		return streak
	default:
		return 0
	}
}
