package app

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"yyoom/internal/ports/mocks"
	"yyoom/internal/types"
)

type captureReport struct {
	lists        [][]types.ListEntry
	transactions [][]types.OutcomeRecord
}

func (r *captureReport) WriteListReport(entries []types.ListEntry) error {
	r.lists = append(r.lists, entries)
	return nil
}

func (r *captureReport) WriteTransactionReport(records []types.OutcomeRecord) error {
	r.transactions = append(r.transactions, records)
	return nil
}

type stubSource struct {
	requirements []types.Requirement
	err          error
	paths        []string
}

func (s *stubSource) BuildRequires(path string) ([]types.Requirement, error) {
	s.paths = append(s.paths, path)
	return s.requirements, s.err
}

type appFixture struct {
	engine  *mocks.MockTransactionEnginePort
	cleaner *mocks.MockCacheCleanerPort
	source  *stubSource
	report  *captureReport
	service Service

	installs []types.Package
	erases   []types.Package
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &appFixture{
		engine:  mocks.NewMockTransactionEnginePort(ctrl),
		cleaner: mocks.NewMockCacheCleanerPort(ctrl),
		source:  &stubSource{},
		report:  &captureReport{},
	}
	f.service = Service{Engine: f.engine, Cleaner: f.cleaner, Source: f.source, Report: f.report}
	return f
}

// expectSession wires the engine mock to behave like an engine that turns
// every staged package into one transaction member.
func (f *appFixture) expectSession(lists types.PackageLists) {
	f.engine.EXPECT().Lock(gomock.Any()).Return(nil).Times(1)
	f.engine.EXPECT().Packages(gomock.Any()).Return(lists, nil).Times(1)
	f.engine.EXPECT().StageErase(gomock.Any()).DoAndReturn(func(pkg types.Package) error {
		f.erases = append(f.erases, pkg)
		return nil
	}).AnyTimes()
	f.engine.EXPECT().StageInstall(gomock.Any()).DoAndReturn(func(pkg types.Package) error {
		f.installs = append(f.installs, pkg)
		return nil
	}).AnyTimes()
	f.engine.EXPECT().BuildTransaction(gomock.Any()).DoAndReturn(func(context.Context) (types.PlanResult, error) {
		if len(f.members()) == 0 {
			return types.PlanResult{Code: types.PlanNothingToDo}, nil
		}
		return types.PlanResult{Code: types.PlanReady}, nil
	}).AnyTimes()
	f.engine.EXPECT().RunTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.engine.EXPECT().Members().DoAndReturn(f.members).AnyTimes()
	gomock.InOrder(
		f.engine.EXPECT().CloseTransaction().Return(nil).Times(1),
		f.engine.EXPECT().Unlock().Return(nil).Times(1),
	)
}

func (f *appFixture) members() []types.TransactionMember {
	var members []types.TransactionMember
	for _, pkg := range f.erases {
		members = append(members, types.TransactionMember{Package: pkg, State: types.ActionErase})
	}
	for _, pkg := range f.installs {
		members = append(members, types.TransactionMember{Package: pkg, State: types.ActionInstall})
	}
	return members
}

func testPackage(name string, version string, repo string) types.Package {
	return types.Package{
		Name:     name,
		Version:  version,
		Release:  "1",
		Arch:     "x86_64",
		Repo:     repo,
		Provides: []string{name},
	}
}
