package tradeview

import "fmt"

// Error kinds, used by transports to map engine failures to a wire status.
// Every user-visible failure carries one of these plus a human readable
// message.
const (
	KindParse      = "parse_error"
	KindOversell   = "oversell_error"
	KindNotFound   = "not_found"
	KindValidation = "validation_error"
	KindInternal   = "internal_error"
)

// ParseError reports a malformed row in an uploaded ledger. The whole parse
// is aborted on the first such error: a partially ingested ledger is never
// produced.
type ParseError struct {
	Row    int    // 1-based data row in the source table, 0 for file-level failures
	Reason string
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("parse error: %s", e.Reason)
	}
	return fmt.Sprintf("parse error at row %d: %s", e.Row, e.Reason)
}

func (e *ParseError) Kind() string { return KindParse }

// OversellError reports a sell that exceeds the tracked holding at that point
// of the replay. The engine does not support short positions, so the ledger
// is internally inconsistent.
type OversellError struct {
	Symbol    string
	Attempted Quantity
	Available Quantity
}

func (e *OversellError) Error() string {
	return fmt.Sprintf("cannot sell %s of %s, position is only %s", e.Attempted, e.Symbol, e.Available)
}

func (e *OversellError) Kind() string { return KindOversell }

// NotFoundError reports a missing stored record. Absence of a result for an
// uploaded but unprocessed ledger is a distinct, expected state from an
// unknown file id; Resource tells them apart.
type NotFoundError struct {
	Resource string // "ledger" or "result"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for file %q", e.Resource, e.ID)
}

func (e *NotFoundError) Kind() string { return KindNotFound }

// ValidationError reports a malformed request, like a missing file id.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Kind() string { return KindValidation }

// InternalError wraps a storage collaborator failure. It is not retried
// internally; callers may retry the operation, recomputation is idempotent.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Kind() string { return KindInternal }

func (e *InternalError) Unwrap() error { return e.Err }
