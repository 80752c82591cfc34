package domain

import "math"

// Status is a traffic-light rating for a day or a week.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// DayStatus rates a logged day. A day with no entry is yellow by
// convention; callers pass zero minutes only for actual entries.
func DayStatus(deepMinutes, noiseMinutes int) Status {
	if deepMinutes >= 90 && noiseMinutes <= 60 {
		return StatusGreen
	}
	if noiseMinutes > deepMinutes && noiseMinutes >= 90 {
		return StatusRed
	}
	return StatusYellow
}

// WeekStatus rates a week from its self-rating and the number of hard
// deviation flags. Soft flags are never counted here.
func WeekStatus(trajectoryQuality *int, flagCount int) Status {
	if (trajectoryQuality != nil && *trajectoryQuality == 1) || flagCount >= 2 {
		return StatusRed
	}
	if (trajectoryQuality != nil && *trajectoryQuality == 2) || flagCount == 1 {
		return StatusYellow
	}
	return StatusGreen
}

// IncomeStatusKind classifies actual income against the vector target.
type IncomeStatusKind string

const (
	IncomeAhead  IncomeStatusKind = "ahead"
	IncomeTrack  IncomeStatusKind = "track"
	IncomeBehind IncomeStatusKind = "behind"
)

// IncomeResult is the derived income standing for a month.
type IncomeResult struct {
	Kind  IncomeStatusKind
	Delta *int // actual - target, nil when no actual recorded
}

// IncomeStatus compares actual income with the target. No recorded
// actual means "on track" with no delta. A non-positive target is
// treated as met.
func IncomeStatus(target int, actual *int) IncomeResult {
	if actual == nil {
		return IncomeResult{Kind: IncomeTrack}
	}
	delta := *actual - target
	ratio := 1.0
	if target > 0 {
		ratio = float64(*actual) / float64(target)
	}
	res := IncomeResult{Delta: &delta}
	switch {
	case ratio >= 1.05:
		res.Kind = IncomeAhead
	case ratio >= 0.95:
		res.Kind = IncomeTrack
	default:
		res.Kind = IncomeBehind
	}
	return res
}

// TrendKind classifies a scalar against its previous period.
type TrendKind string

const (
	TrendNA   TrendKind = "na"
	TrendFlat TrendKind = "flat"
	TrendUp   TrendKind = "up"
	TrendDown TrendKind = "down"
)

// Trend compares current vs previous; either missing means "not
// applicable", and a delta within Epsilon is flat.
func Trend(current, previous *float64) TrendKind {
	if current == nil || previous == nil {
		return TrendNA
	}
	delta := *current - *previous
	if math.Abs(delta) <= Epsilon {
		return TrendFlat
	}
	if delta > 0 {
		return TrendUp
	}
	return TrendDown
}
