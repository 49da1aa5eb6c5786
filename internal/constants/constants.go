package constants

// API metadata returned by the root endpoint
const (
	APIName    = "Project Management Dashboard API"
	APIVersion = "1.0.0"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Insight engine thresholds
const (
	ExcellentCompletionRate = 0.8
	GoodCompletionRate      = 0.6
	AverageCompletionRate   = 0.4

	ExcellentOverdueRate = 0.1
	GoodOverdueRate      = 0.2
	AverageOverdueRate   = 0.3

	LowCompletionRate      = 0.3
	InProgressOverloadRate = 0.5

	// Deadline is flagged as a risk when it falls within this window.
	DeadlineWarningDays = 7

	// Schedule risk triggers when less than half the timeline remains
	// while progress is still below this percentage.
	BehindScheduleProgress = 50.0
	BehindScheduleElapsed  = 0.5
)
