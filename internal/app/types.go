package app

import "yyoom/internal/types"

type ListRequest struct {
	Categories []types.ListCategory
}

type TransactRequest struct {
	Installs    []string
	Erases      []string
	SkipMissing bool
	PreferRepos []string
}

type BuildDependenciesRequest struct {
	SourcePackage string
	SkipMissing   bool
	PreferRepos   []string
}

type CleanRequest struct{}

type CleanResult struct {
	Results []types.CleanResult
}
