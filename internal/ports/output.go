package ports

import "yyoom/internal/types"

// ReportPort is the structured report channel. Exactly one Write call is
// made per invocation.
type ReportPort interface {
	WriteListReport(entries []types.ListEntry) error
	WriteTransactionReport(records []types.OutcomeRecord) error
}
