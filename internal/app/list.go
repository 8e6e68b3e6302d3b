package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"yyoom/internal/types"
)

// ParseListCategories validates category names given on the command line.
func ParseListCategories(values []string) ([]types.ListCategory, error) {
	if len(values) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one list category is required")
	}
	var categories []types.ListCategory
	seen := map[types.ListCategory]struct{}{}
	for _, value := range values {
		category := types.ListCategory(strings.ToLower(strings.TrimSpace(value)))
		switch category {
		case types.ListInstalled, types.ListAvailable, types.ListExtras:
		default:
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown list category %q (expected installed, available or extras)", value))
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	return categories, nil
}

// List reports the packages of the requested categories. It reads the
// engine's package views without taking the database lock.
func (s Service) List(ctx context.Context, req ListRequest) error {
	raw := make([]string, 0, len(req.Categories))
	for _, category := range req.Categories {
		raw = append(raw, string(category))
	}
	categories, err := ParseListCategories(raw)
	if err != nil {
		return err
	}
	lists, err := s.Engine.Packages(ctx)
	if err != nil {
		return err
	}
	entries := listEntries(lists, categories)
	log.Ctx(ctx).Debug().Int("entries", len(entries)).Msg("package list built")
	return s.Report.WriteListReport(entries)
}

func listEntries(lists types.PackageLists, categories []types.ListCategory) []types.ListEntry {
	seen := map[string]struct{}{}
	var entries []types.ListEntry
	for _, category := range categories {
		group := categoryEntries(lists, category)
		sortListEntries(group)
		for _, entry := range group {
			key := entry.Package.Repo + "/" + entry.Package.NEVRA()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, entry)
		}
	}
	return entries
}

// categoryEntries tags a category's packages. Reinstall candidates are
// reported as available, extras as installed.
func categoryEntries(lists types.PackageLists, category types.ListCategory) []types.ListEntry {
	switch category {
	case types.ListInstalled:
		return tagPackages(lists.Installed, types.StatusInstalled)
	case types.ListAvailable:
		entries := tagPackages(lists.Available, types.StatusAvailable)
		return append(entries, tagPackages(lists.Reinstall, types.StatusAvailable)...)
	case types.ListExtras:
		return tagPackages(lists.Extras, types.StatusInstalled)
	default:
		return nil
	}
}

func tagPackages(packages []types.Package, status types.ListStatus) []types.ListEntry {
	entries := make([]types.ListEntry, 0, len(packages))
	for _, pkg := range packages {
		entries = append(entries, types.ListEntry{Package: pkg, Status: status})
	}
	return entries
}

func sortListEntries(entries []types.ListEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Package, entries[j].Package
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Arch != b.Arch {
			return a.Arch < b.Arch
		}
		if cmp := a.EVR().Compare(b.EVR()); cmp != 0 {
			return cmp < 0
		}
		return a.Repo < b.Repo
	})
}
