package adapters

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"yyoom/internal/types"
)

func TestReportJSONTransaction(t *testing.T) {
	var out bytes.Buffer
	adapter := NewReportJSONAdapter(&out)

	err := adapter.WriteTransactionReport([]types.OutcomeRecord{
		{
			Name:       "foo",
			Status:     types.ActionTypeInstall,
			ActionCode: types.ActionInstall,
			Package: types.Package{
				Name: "foo", Version: "2.1", Release: "1", Arch: "x86_64", Repo: "repoB",
				Provides: []string{"foo"},
			},
		},
		{
			Name:        "missing-pkg",
			Status:      types.ActionTypeMissing,
			Package:     types.Placeholder("missing-pkg", "missing-pkg"),
			Requirement: "missing-pkg",
		},
	})
	require.NoError(t, err)

	expected := `[
  {
    "action_code": 20,
    "action_type": "install",
    "arch": "x86_64",
    "epoch": 0,
    "name": "foo",
    "provides": [
      "foo"
    ],
    "release": "1",
    "repo": "repoB",
    "version": "2.1"
  },
  {
    "action": null,
    "action_type": "missing",
    "name": "missing-pkg",
    "requirement": "missing-pkg"
  }
]
`
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestReportJSONList(t *testing.T) {
	var out bytes.Buffer
	err := NewReportJSONAdapter(&out).WriteListReport([]types.ListEntry{
		{
			Package: types.Package{Name: "bash", Epoch: 0, Version: "5.2", Release: "3", Arch: "x86_64", Repo: types.InstalledRepo},
			Status:  types.StatusInstalled,
		},
	})
	require.NoError(t, err)

	expected := `[
  {
    "arch": "x86_64",
    "epoch": 0,
    "name": "bash",
    "provides": [],
    "release": "3",
    "repo": "installed",
    "status": "installed",
    "version": "5.2"
  }
]
`
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestReportJSONEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewReportJSONAdapter(&out).WriteTransactionReport(nil))
	require.Equal(t, "[]\n", out.String())
}
