package enums

import "fmt"

// QuoteStatus is the lifecycle of a quote request. Forward movement is
// PENDING -> REVIEWED -> COMPLETED; CANCELLED is reachable from any
// non-cancelled state and is terminal.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "PENDING"
	QuoteStatusReviewed  QuoteStatus = "REVIEWED"
	QuoteStatusCompleted QuoteStatus = "COMPLETED"
	QuoteStatusCancelled QuoteStatus = "CANCELLED"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusReviewed,
	QuoteStatusCompleted,
	QuoteStatusCancelled,
}

// String implements fmt.Stringer.
func (s QuoteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known QuoteStatus.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the receiver may move to the target status.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	if s == target {
		return false
	}
	if target == QuoteStatusCancelled {
		return s != QuoteStatusCancelled
	}
	switch s {
	case QuoteStatusPending:
		return target == QuoteStatusReviewed
	case QuoteStatusReviewed:
		return target == QuoteStatusCompleted
	default:
		return false
	}
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
