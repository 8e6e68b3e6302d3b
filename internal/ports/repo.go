package ports

//go:generate mockgen -destination mocks/engine_mock.go -package mocks . TransactionEnginePort,CacheCleanerPort

import (
	"context"

	"yyoom/internal/types"
)

// PackageSourcePort exposes the engine's package views.
type PackageSourcePort interface {
	Packages(ctx context.Context) (types.PackageLists, error)
}

// TransactionEnginePort wraps the package engine's transaction primitives.
//
// A caller must hold the lock between Lock and Unlock; StageInstall and
// StageErase only record intents, BuildTransaction turns them into members
// and RunTransaction executes them. CloseTransaction discards any engine
// held transaction state and is safe to call in every state.
type TransactionEnginePort interface {
	PackageSourcePort

	Lock(ctx context.Context) error
	Unlock() error

	StageInstall(pkg types.Package) error
	StageErase(pkg types.Package) error
	BuildTransaction(ctx context.Context) (types.PlanResult, error)
	RunTransaction(ctx context.Context, mode types.RunMode, callback TransactionCallback) error
	Members() []types.TransactionMember
	CloseTransaction() error
}

// CacheCleanerPort clears one engine cache category.
type CacheCleanerPort interface {
	Clean(ctx context.Context, category types.CacheCategory) (types.CleanResult, error)
}

// TransactionCallback observes a transaction run. The same callback is used
// for the test and the commit run; implementations must not fail.
type TransactionCallback interface {
	Event(member types.TransactionMember, mode types.RunMode, event types.MemberEvent)
	ScriptOutput(line string)
	ErrorLine(line string)
}

// SourcePackagePort reads build requirements from a source package.
type SourcePackagePort interface {
	BuildRequires(path string) ([]types.Requirement, error)
}
