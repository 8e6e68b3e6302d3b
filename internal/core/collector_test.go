package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yyoom/internal/shared"
	"yyoom/internal/types"
)

type recordingReport struct {
	transactions [][]types.OutcomeRecord
	lists        [][]types.ListEntry
	onWrite      func()
	err          error
}

func (r *recordingReport) WriteListReport(entries []types.ListEntry) error {
	r.lists = append(r.lists, entries)
	return r.err
}

func (r *recordingReport) WriteTransactionReport(records []types.OutcomeRecord) error {
	if r.onWrite != nil {
		r.onWrite()
	}
	r.transactions = append(r.transactions, records)
	return r.err
}

func TestOutcomeCollectorPostTransaction(t *testing.T) {
	report := &recordingReport{}
	collector := NewOutcomeCollector(t.Context(), report, true)

	require.NoError(t, collector.OnMissingPackage("ghost >= 1.0"))
	foo := testPackage("foo", "2.1-1", "repoB", "foo")
	bar := testPackage("bar", "1.0-1", types.InstalledRepo, "bar")
	require.NoError(t, collector.PostTransaction([]types.TransactionMember{
		{Package: foo, State: types.ActionInstall},
		{Package: bar, State: types.ActionErase},
	}))

	require.Len(t, report.transactions, 1)
	expected := []types.OutcomeRecord{
		{Name: "foo", Status: types.ActionTypeInstall, ActionCode: types.ActionInstall, Package: foo},
		{Name: "bar", Status: types.ActionTypeErase, ActionCode: types.ActionErase, Package: bar},
		{
			Name:        "ghost",
			Status:      types.ActionTypeMissing,
			Package:     types.Placeholder("ghost", "ghost >= 1.0"),
			Requirement: "ghost >= 1.0",
		},
	}
	if diff := cmp.Diff(expected, report.transactions[0]); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestOutcomeCollectorPostsOnce(t *testing.T) {
	report := &recordingReport{}
	collector := NewOutcomeCollector(t.Context(), report, false)
	require.NoError(t, collector.PostTransaction(nil))
	require.Error(t, collector.PostTransaction(nil))
	assert.Len(t, report.transactions, 1)
	assert.Empty(t, report.transactions[0])
}

func TestOutcomeCollectorStrictMissing(t *testing.T) {
	report := &recordingReport{}
	collector := NewOutcomeCollector(t.Context(), report, false)
	err := collector.OnMissingPackage("ghost")
	require.Error(t, err)
	assert.Equal(t, shared.KindResolutionError, shared.KindOf(err))
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "ghost")

	require.NoError(t, collector.PostTransaction(nil))
	require.Len(t, report.transactions, 1)
	assert.Empty(t, report.transactions[0])
}

func TestOutcomeCollectorMissingDeduplicates(t *testing.T) {
	report := &recordingReport{}
	collector := NewOutcomeCollector(t.Context(), report, true)
	require.NoError(t, collector.OnMissingPackage("ghost"))
	require.NoError(t, collector.OnMissingPackage("ghost"))
	require.NoError(t, collector.OnMissingPackage("phantom"))
	require.NoError(t, collector.PostTransaction(nil))

	require.Len(t, report.transactions, 1)
	var names []string
	for _, record := range report.transactions[0] {
		names = append(names, record.Name)
	}
	assert.Equal(t, []string{"ghost", "phantom"}, names)
}

func TestOutcomeCollectorUnparseableMissingKeepsRawName(t *testing.T) {
	report := &recordingReport{}
	collector := NewOutcomeCollector(t.Context(), report, true)
	require.NoError(t, collector.OnMissingPackage("weird name"))
	require.NoError(t, collector.PostTransaction(nil))

	require.Len(t, report.transactions, 1)
	require.Len(t, report.transactions[0], 1)
	assert.Equal(t, "weird name", report.transactions[0][0].Name)
}

func TestOutcomeCollectorReportError(t *testing.T) {
	collector := NewOutcomeCollector(t.Context(), &recordingReport{err: errors.New("closed pipe")}, true)
	require.Error(t, collector.PostTransaction(nil))
}

func TestOutcomeCollectorCallbacksNeverFail(t *testing.T) {
	collector := NewOutcomeCollector(t.Context(), &recordingReport{}, true)
	member := types.TransactionMember{Package: testPackage("foo", "1.0-1", "base"), State: types.ActionFailed}
	assert.NotPanics(t, func() {
		collector.Event(member, types.RunModeTest, types.MemberStarted)
		collector.Event(member, types.RunModeCommit, types.MemberFailed)
		collector.ScriptOutput("running scriptlet")
		collector.ErrorLine("error: unpacking failed")
	})
}
