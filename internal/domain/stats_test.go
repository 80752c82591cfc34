package domain

import "testing"

func TestComputeRangeStatsDerived(t *testing.T) {
	s := ComputeRangeStats(RangeTotals{
		DeepMinutes:  300,
		NoiseMinutes: 100,
		StepsTotal:   25000,
		KeyMoves:     3,
		Trainings:    2,
		DaysCount:    4,
	})

	if s.NoisePercent != 25 {
		t.Fatalf("noise percent = %d, want 25", s.NoisePercent)
	}
	if s.AvgSteps != 6250 {
		t.Fatalf("avg steps = %d, want 6250", s.AvgSteps)
	}
	// speed = 300/60 + 3*2
	if s.Speed != 11 {
		t.Fatalf("speed = %v, want 11", s.Speed)
	}
}

func TestComputeRangeStatsZeroDenominators(t *testing.T) {
	s := ComputeRangeStats(RangeTotals{})
	if s.NoisePercent != 0 {
		t.Fatalf("noise percent on empty range = %d, want 0", s.NoisePercent)
	}
	if s.AvgSteps != 0 {
		t.Fatalf("avg steps on empty range = %d, want 0", s.AvgSteps)
	}
	if s.SleepAvg != nil || s.SleepConsistency != nil {
		t.Fatal("sleep stats should stay nil with no tracked days")
	}
}

func TestComputeRangeStatsRounding(t *testing.T) {
	// 100 noise of 300 tracked = 33.33 -> 33; steps 10/3 -> 3
	s := ComputeRangeStats(RangeTotals{
		DeepMinutes:  200,
		NoiseMinutes: 100,
		StepsTotal:   10,
		DaysCount:    3,
	})
	if s.NoisePercent != 33 {
		t.Fatalf("noise percent = %d, want 33", s.NoisePercent)
	}
	if s.AvgSteps != 3 {
		t.Fatalf("avg steps = %d, want 3", s.AvgSteps)
	}
}

func TestComputeRangeStatsSleep(t *testing.T) {
	s := ComputeRangeStats(RangeTotals{
		SleepAvg:         floatPtr(7.333333),
		SleepMin:         floatPtr(6.5),
		SleepMax:         floatPtr(8.25),
		SleepTrackedDays: 5,
	})
	if s.SleepAvg == nil || *s.SleepAvg != 7.33 {
		t.Fatalf("sleep avg = %v, want 7.33", s.SleepAvg)
	}
	if s.SleepConsistency == nil || *s.SleepConsistency != 1.75 {
		t.Fatalf("sleep consistency = %v, want 1.75", s.SleepConsistency)
	}
	if s.SleepTrackedDays != 5 {
		t.Fatalf("tracked days = %d", s.SleepTrackedDays)
	}
}
