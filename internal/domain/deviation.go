package domain

// Deviation flag texts. Hard flags feed WeekStatus; soft flags are
// advisory only.
const (
	FlagNoKeyMoves  = "no strategic steps two weeks running"
	FlagNoiseShare  = "noise share over 30% this week"
	FlagLowDeepWork = "deep work under 6 hours two weeks running"

	SoftFlagSleepData   = "sleep: too few tracked days"
	SoftFlagSleepTarget = "sleep: below target"
)

// Deviation is the weekly comparison of aggregates against fixed
// thresholds and the vector's sleep target.
type Deviation struct {
	Flags     []string
	SoftFlags []string

	SleepTrend    TrendKind
	SleepVsTarget *float64 // current avg minus target, nil when either is missing
}

// WeekDeviation emits flags for the current week given the previous
// week's aggregates. Flag order is fixed and flags are never
// deduplicated, so renders are reproducible.
func WeekDeviation(current, previous RangeStats, sleepTarget *float64) Deviation {
	d := Deviation{SleepTrend: Trend(current.SleepAvg, previous.SleepAvg)}

	if current.KeyMoves == 0 && previous.KeyMoves == 0 {
		d.Flags = append(d.Flags, FlagNoKeyMoves)
	}
	if current.NoisePercent > 30 {
		d.Flags = append(d.Flags, FlagNoiseShare)
	}
	if current.DeepMinutes < 360 && previous.DeepMinutes < 360 {
		d.Flags = append(d.Flags, FlagLowDeepWork)
	}

	if current.SleepAvg != nil && sleepTarget != nil {
		delta := roundTwo(*current.SleepAvg - *sleepTarget)
		d.SleepVsTarget = &delta
	}
	if current.SleepTrackedDays < 4 {
		d.SoftFlags = append(d.SoftFlags, SoftFlagSleepData)
	}
	if d.SleepVsTarget != nil && *d.SleepVsTarget < -Epsilon {
		d.SoftFlags = append(d.SoftFlags, SoftFlagSleepTarget)
	}
	return d
}
