package observability

// Metric namespace
const (
	MetricNamespace = "lotto"
)

// Metric names
const (
	// Ticket metrics
	TicketsSavedTotal    = "tickets_saved_total"
	ResultsRecordedTotal = "results_recorded_total"
	PrizeAmountTotal     = "prize_amount_total"
	HistoryResetsTotal   = "history_resets_total"

	// Generator metrics
	NumbersDrawnTotal = "numbers_drawn_total"

	// HTTP metrics
	HTTPRequestsTotal   = "http_requests_total"
	HTTPRequestDuration = "http_request_duration_seconds"
)

// Label keys
const (
	LabelType   = "type"
	LabelMode   = "mode"
	LabelReason = "reason"
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
)

// Generation modes
const (
	ModeRandom = "random"
	ModeSet    = "set"
	ModeSmart  = "smart"
)

// History reset reasons
const (
	ResetReasonCleared  = "cleared"
	ResetReasonImported = "imported"
)
