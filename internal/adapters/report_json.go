package adapters

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"yyoom/internal/ports"
	"yyoom/internal/types"
)

// Report fields are declared in key order so every document is emitted with
// sorted keys.

type listReportEntry struct {
	Arch     string   `json:"arch"`
	Epoch    int      `json:"epoch"`
	Name     string   `json:"name"`
	Provides []string `json:"provides"`
	Release  string   `json:"release"`
	Repo     string   `json:"repo"`
	Status   string   `json:"status"`
	Version  string   `json:"version"`
}

type transactionReportEntry struct {
	ActionCode int      `json:"action_code"`
	ActionType string   `json:"action_type"`
	Arch       string   `json:"arch"`
	Epoch      int      `json:"epoch"`
	Name       string   `json:"name"`
	Provides   []string `json:"provides"`
	Release    string   `json:"release"`
	Repo       string   `json:"repo"`
	Version    string   `json:"version"`
}

type missingReportEntry struct {
	Action      *string `json:"action"`
	ActionType  string  `json:"action_type"`
	Name        string  `json:"name"`
	Requirement string  `json:"requirement"`
}

// ReportJSONAdapter writes the structured report to the process's standard
// output. Nothing else may write to Out.
type ReportJSONAdapter struct {
	Out io.Writer
}

func NewReportJSONAdapter(out io.Writer) ReportJSONAdapter {
	if out == nil {
		out = os.Stdout
	}
	return ReportJSONAdapter{Out: out}
}

func (a ReportJSONAdapter) WriteListReport(entries []types.ListEntry) error {
	payload := make([]listReportEntry, 0, len(entries))
	for _, entry := range entries {
		pkg := entry.Package
		payload = append(payload, listReportEntry{
			Arch:     pkg.Arch,
			Epoch:    pkg.Epoch,
			Name:     pkg.Name,
			Provides: nonNil(pkg.Provides),
			Release:  pkg.Release,
			Repo:     pkg.Repo,
			Status:   string(entry.Status),
			Version:  pkg.Version,
		})
	}
	return a.write(payload)
}

func (a ReportJSONAdapter) WriteTransactionReport(records []types.OutcomeRecord) error {
	payload := make([]any, 0, len(records))
	for _, record := range records {
		if record.Missing() {
			payload = append(payload, missingReportEntry{
				ActionType:  string(types.ActionTypeMissing),
				Name:        record.Name,
				Requirement: record.Requirement,
			})
			continue
		}
		pkg := record.Package
		payload = append(payload, transactionReportEntry{
			ActionCode: int(record.ActionCode),
			ActionType: string(record.Status),
			Arch:       pkg.Arch,
			Epoch:      pkg.Epoch,
			Name:       record.Name,
			Provides:   nonNil(pkg.Provides),
			Release:    pkg.Release,
			Repo:       pkg.Repo,
			Version:    pkg.Version,
		})
	}
	return a.write(payload)
}

func (a ReportJSONAdapter) write(payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal report").
			WithCause(err)
	}
	data = append(data, '\n')
	if _, err := a.Out.Write(data); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report").
			WithCause(err)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

var _ ports.ReportPort = ReportJSONAdapter{}
