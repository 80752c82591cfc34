package domain

import "math"

// RangeTotals are the raw sums the store reads for a date range with
// one SELECT; everything derived from them lives in RangeStats.
type RangeTotals struct {
	DeepMinutes      int
	NoiseMinutes     int
	StepsTotal       int
	KeyMoves         int
	Trainings        int
	DaysCount        int
	SleepAvg         *float64
	SleepMin         *float64
	SleepMax         *float64
	SleepTrackedDays int
}

// RangeStats is the full aggregate for an inclusive date range.
type RangeStats struct {
	DeepMinutes  int
	NoiseMinutes int
	StepsTotal   int
	AvgSteps     int
	KeyMoves     int
	Trainings    int
	DaysCount    int
	NoisePercent int
	Speed        float64

	SleepAvg         *float64
	SleepMin         *float64
	SleepMax         *float64
	SleepTrackedDays int
	SleepConsistency *float64 // max - min when both present
}

// ComputeRangeStats derives the request-time aggregate from raw sums.
// Recomputed fully on every request; one row per calendar day keeps
// this trivially cheap.
func ComputeRangeStats(t RangeTotals) RangeStats {
	s := RangeStats{
		DeepMinutes:      t.DeepMinutes,
		NoiseMinutes:     t.NoiseMinutes,
		StepsTotal:       t.StepsTotal,
		KeyMoves:         t.KeyMoves,
		Trainings:        t.Trainings,
		DaysCount:        t.DaysCount,
		SleepMin:         t.SleepMin,
		SleepMax:         t.SleepMax,
		SleepTrackedDays: t.SleepTrackedDays,
	}

	tracked := t.DeepMinutes + t.NoiseMinutes
	if tracked > 0 {
		s.NoisePercent = int(math.Round(float64(t.NoiseMinutes) / float64(tracked) * 100))
	}
	if t.DaysCount > 0 {
		s.AvgSteps = int(math.Round(float64(t.StepsTotal) / float64(t.DaysCount)))
	}
	s.Speed = float64(t.DeepMinutes)/60 + float64(t.KeyMoves)*2

	if t.SleepAvg != nil {
		avg := roundTwo(*t.SleepAvg)
		s.SleepAvg = &avg
	}
	if t.SleepMin != nil && t.SleepMax != nil {
		c := roundTwo(*t.SleepMax - *t.SleepMin)
		s.SleepConsistency = &c
	}
	return s
}
