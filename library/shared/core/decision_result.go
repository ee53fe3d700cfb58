package core

// LedgerEffect is what a decision does to the available copies of the affected book.
type LedgerEffect string

const (
	NoLedgerEffect LedgerEffect = ""
	HoldCopy       LedgerEffect = "hold"
	ReleaseCopy    LedgerEffect = "release"
)

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// IdempotentDecision(), SuccessDecision(event, effect), or ErrorDecision(err).
type DecisionResult struct {
	Outcome string      // "idempotent", "success", or "error"
	Event   DomainEvent // nil unless the outcome is success
	Effect  LedgerEffect
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision() DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
	}
}

// SuccessDecision creates a DecisionResult with an event to persist and its effect on the ledger.
func SuccessDecision(event DomainEvent, effect LedgerEffect) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Event:   event,
		Effect:  effect,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasEventToPersist returns true if the decision changes state.
func (r DecisionResult) HasEventToPersist() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true if the requested state is already in place.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
