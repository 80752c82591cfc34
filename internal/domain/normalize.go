// Package domain holds the pure core of Vector OS: form-input
// normalizers, day/week/income status rules, range-stat derivation
// and the weekly deviation engine. Nothing here touches the store.
package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxDayMinutes = 24 * 60
	MaxSteps      = 9_999_999
	MaxStepDigits = 7

	MinWeight = 30.0
	MaxWeight = 150.0

	// Epsilon is the dead zone for trend comparison and the sleep
	// target tolerance.
	Epsilon = 0.1
)

// TrainingMode is a kind of training logged on a day.
type TrainingMode string

const (
	TrainingNone     TrainingMode = "none"
	TrainingLight    TrainingMode = "light"
	TrainingStrength TrainingMode = "strength"
	TrainingCardio   TrainingMode = "cardio"
)

// AllTrainingModes lists the selectable modes in display order.
var AllTrainingModes = []TrainingMode{TrainingNone, TrainingLight, TrainingStrength, TrainingCardio}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}

// toInt truncates a decimal string to an integer; anything
// unparseable becomes 0.
func toInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}

var timeOfDayRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseTimeOfDay reads an "HH:MM" field as minutes since midnight.
// ok is false when the field does not look like a time at all, so
// callers can fall through to the parts-based inputs.
func ParseTimeOfDay(raw string) (minutes int, ok bool) {
	m := timeOfDayRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, false
	}
	h := clampInt(toInt(m[1]), 0, 24)
	mm := clampInt(toInt(m[2]), 0, 59)
	return clampInt(h*60+mm, 0, MaxDayMinutes), true
}

// ParseDurationParts combines separate hour and minute fields into
// minutes, clamped to maxMinutes.
func ParseDurationParts(hoursRaw, minutesRaw string, maxMinutes int) int {
	h := clampInt(toInt(hoursRaw), 0, 99)
	m := clampInt(toInt(minutesRaw), 0, 59)
	return clampInt(h*60+m, 0, maxMinutes)
}

// ResolveDurationMinutes applies the input precedence for a duration:
// the HH:MM field wins when parseable, otherwise the hour/minute
// parts are used. The result never exceeds a day.
func ResolveDurationMinutes(timeRaw, hoursRaw, minutesRaw string) int {
	if m, ok := ParseTimeOfDay(timeRaw); ok {
		return m
	}
	return ParseDurationParts(hoursRaw, minutesRaw, MaxDayMinutes)
}

// SleepHoursFromString parses a decimal hours field (comma or dot
// separator). Blank is nil — "no value", distinct from zero.
func SleepHoursFromString(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	v := roundTwo(clampFloat(f, 0, 24))
	return &v
}

// SleepHoursFromMinutes converts minutes to clamped, 2-decimal hours.
func SleepHoursFromMinutes(minutes int) *float64 {
	v := roundTwo(clampFloat(float64(minutes)/60, 0, 24))
	return &v
}

// SleepHoursFromParts is nil when both fields are blank.
func SleepHoursFromParts(hoursRaw, minutesRaw string) *float64 {
	if strings.TrimSpace(hoursRaw) == "" && strings.TrimSpace(minutesRaw) == "" {
		return nil
	}
	return SleepHoursFromMinutes(ParseDurationParts(hoursRaw, minutesRaw, MaxDayMinutes))
}

// ResolveSleepHours applies the sleep input precedence: HH:MM field,
// then hour/minute parts, then the raw decimal field. All blank → nil.
func ResolveSleepHours(timeRaw, hoursRaw, minutesRaw, decimalRaw string) *float64 {
	if m, ok := ParseTimeOfDay(timeRaw); ok {
		return SleepHoursFromMinutes(m)
	}
	if v := SleepHoursFromParts(hoursRaw, minutesRaw); v != nil {
		return v
	}
	return SleepHoursFromString(decimalRaw)
}

// ParseScore reads a 1..5 self-rating. Blank is nil.
func ParseScore(raw string) *int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	n := clampInt(toInt(raw), 1, 5)
	return &n
}

var nonDigitRe = regexp.MustCompile(`[^\d]`)

// ParseSteps keeps only digits, truncates to 7 of them and clamps to
// the step ceiling. Empty or non-numeric input is 0.
func ParseSteps(raw string) int {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) > MaxStepDigits {
		digits = digits[:MaxStepDigits]
	}
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return clampInt(n, 0, MaxSteps)
}

// ParseMoney strips whitespace and truncates to a non-negative
// integer amount.
func ParseMoney(raw string) int {
	cleaned := strings.Join(strings.Fields(raw), "")
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := int(math.Trunc(f))
	if n < 0 {
		return 0
	}
	return n
}

// ParseWeight reads a kg value with either decimal separator,
// falling back when unparseable, and clamps to the sane band.
func ParseWeight(raw string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		f = fallback
	}
	return clampFloat(f, MinWeight, MaxWeight)
}

// NormalizeWeightRange orders a weight pair so min <= max.
func NormalizeWeightRange(a, b float64) (min, max float64) {
	if a > b {
		return b, a
	}
	return a, b
}

// NormalizeTrainingModes lowercases, filters to the allowed set and
// dedupes. "none" dominates everything else; an empty result defaults
// to {none}. Idempotent.
func NormalizeTrainingModes(values []string) []TrainingMode {
	allowed := map[TrainingMode]bool{
		TrainingNone: true, TrainingLight: true, TrainingStrength: true, TrainingCardio: true,
	}
	seen := map[TrainingMode]bool{}
	var modes []TrainingMode
	for _, v := range values {
		m := TrainingMode(strings.ToLower(strings.TrimSpace(v)))
		if !allowed[m] {
			continue
		}
		if m == TrainingNone {
			return []TrainingMode{TrainingNone}
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		modes = append(modes, m)
	}
	if len(modes) == 0 {
		return []TrainingMode{TrainingNone}
	}
	return modes
}
