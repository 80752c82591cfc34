package store

import (
	"time"

	"github.com/sadopc/vectoros/internal/domain"
)

// Vector is the singleton long-horizon target state (row id 1).
type Vector struct {
	ID               int64
	StartDate        string // ISO date
	HorizonMonths    int
	IncomeTarget     int
	SleepTargetHours *float64
	WeightMin        float64
	WeightMax        float64
	ProjectGoal      string
	MaxHoursWeek     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Project struct {
	ID           int64
	Name         string
	MaxHoursWeek int
	Goal         *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DayProjectEntry is one per-project key move logged on a day.
type DayProjectEntry struct {
	ProjectID int64
	KeyMove   *string
}

// Day is one calendar day's log, unique per ISO date. Training modes
// and project entries are owned child sets, fully replaced on save.
type Day struct {
	ID             int64
	Date           string
	DeepMinutes    int
	NoiseMinutes   int
	SleepHours     *float64
	SleepQuality   *int
	SleepNote      *string
	Steps          int
	KeyMove        *string
	TrainingModes  []domain.TrainingMode
	ProjectEntries []DayProjectEntry
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DayPayload is the normalized form submission for a day.
type DayPayload struct {
	Date           string
	DeepMinutes    int
	NoiseMinutes   int
	SleepHours     *float64
	SleepQuality   *int
	SleepNote      *string
	Steps          int
	KeyMove        *string
	TrainingModes  []domain.TrainingMode
	ProjectEntries []DayProjectEntry
}

type Week struct {
	ID                int64
	WeekStart         string
	TrajectoryQuality *int
	Note              *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MonthReview is unique per "YYYY-MM". Once locked it is immutable.
type MonthReview struct {
	ID                int64
	Month             string
	IncomeActual      *int
	IncomeDone        bool
	TrajectoryQuality *int
	Note              *string
	Locked            bool
	LockedAt          *time.Time
	WeekIncome        map[string]int // week-start ISO date -> income
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type MonthReviewPayload struct {
	Month             string
	IncomeActual      *int
	IncomeDone        bool
	TrajectoryQuality *int
	Note              *string
	WeekIncome        map[string]int
	Lock              bool
}

type VectorPayload struct {
	StartDate        string
	HorizonMonths    int
	IncomeTarget     int
	SleepTargetHours *float64
	WeightMin        float64
	WeightMax        float64
	ProjectGoal      string
	MaxHoursWeek     int
}

type NoteItem struct {
	ID   int64
	Date string
	Text string
	Done bool
}
