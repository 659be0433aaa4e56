package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = provider, W2xxx = processing, W3xxx = universe, W4xxx = persistence.
type WarningCode string

const (
	WarnProviderUnavailable WarningCode = "W1001" // fundamentals missing or provider failed; ticker skipped
	WarnProcessingFailed    WarningCode = "W2001" // scoring or classification failed; ticker skipped
	WarnFallbackUniverse    WarningCode = "W3001" // dynamic discovery failed, static list used
	WarnArchiveFailed       WarningCode = "W4001" // table published but run history not recorded
)

// Warning represents a non-fatal issue encountered during a run.
type Warning struct {
	Code    WarningCode `json:"code"`
	Ticker  string      `json:"ticker,omitempty"`
	Message string      `json:"message"`
}
