package constants

const (
	// Mood score bounds for completion records. The database schema enforces
	// the same range with a CHECK constraint; MoodUnset marks an absent score.
	MoodUnset = 0
	MoodMin   = 1
	MoodMax   = 10

	// Inactivity reporting:
	// - DefaultInactivityMonths is how far back the stats command looks when
	//   flagging habits as abandoned.
	// - InactivityMonthDays is the fixed month length used for the cutoff.
	DefaultInactivityMonths = 6
	InactivityMonthDays     = 30

	// SeedWeeks is how many weeks of demo completions the seeder generates.
	SeedWeeks = 4
)

func init() {
	// Runtime validation: the mood range must be non-empty and exclude the
	// unset sentinel.
	if MoodMin > MoodMax || (MoodUnset >= MoodMin && MoodUnset <= MoodMax) {
		panic("invalid mood score range")
	}
}
