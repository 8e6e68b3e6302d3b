package core

import (
	"runtime"
	"sort"

	"yyoom/internal/types"
)

type evrPair struct {
	a types.EVR
	b types.EVR
}

// versionCache memoizes EVR comparisons during matching and sorting, where
// the same candidates are compared repeatedly.
type versionCache struct {
	results map[evrPair]int
}

func newVersionCache() *versionCache {
	return &versionCache{results: map[evrPair]int{}}
}

func (c *versionCache) compare(a types.EVR, b types.EVR) int {
	key := evrPair{a: a, b: b}
	if result, ok := c.results[key]; ok {
		return result
	}
	result := a.Compare(b)
	c.results[key] = result
	c.results[evrPair{a: b, b: a}] = -result
	return result
}

// satisfiesClause reports whether candidate meets clause. A clause without a
// release matches any release of the requested version.
func (c *versionCache) satisfiesClause(candidate types.EVR, clause types.VersionClause) bool {
	if clause.EVR.Release == "" {
		candidate.Release = ""
	}
	result := c.compare(candidate, clause.EVR)
	switch clause.Op {
	case types.ConstraintOpEq, types.ConstraintOpEq2:
		return result == 0
	case types.ConstraintOpNe:
		return result != 0
	case types.ConstraintOpGte:
		return result >= 0
	case types.ConstraintOpLte:
		return result <= 0
	case types.ConstraintOpGt:
		return result > 0
	case types.ConstraintOpLt:
		return result < 0
	case types.ConstraintOpNone:
		return true
	default:
		return false
	}
}

func (c *versionCache) satisfiesAll(candidate types.EVR, clauses []types.VersionClause) bool {
	for _, clause := range clauses {
		if !c.satisfiesClause(candidate, clause) {
			return false
		}
	}
	return true
}

// nativeArch is the RPM architecture of the running host.
var nativeArch = rpmArch(runtime.GOARCH)

// rpmArch maps a GOARCH value to the RPM architecture name.
func rpmArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "i686"
	case "arm":
		return "armv7hl"
	default:
		return goarch
	}
}

// archRank orders the host architecture first, then noarch, then anything
// else.
func archRank(arch string) int {
	switch arch {
	case nativeArch:
		return 0
	case "noarch":
		return 1
	default:
		return 2
	}
}

// sortPackages orders packages by descending EVR, then host architecture
// before foreign ones, then repo id and arch so the result is stable across
// engine enumeration order.
func (c *versionCache) sortPackages(packages []types.Package) {
	sort.SliceStable(packages, func(i, j int) bool {
		if result := c.compare(packages[i].EVR(), packages[j].EVR()); result != 0 {
			return result > 0
		}
		if ri, rj := archRank(packages[i].Arch), archRank(packages[j].Arch); ri != rj {
			return ri < rj
		}
		if packages[i].Repo != packages[j].Repo {
			return packages[i].Repo < packages[j].Repo
		}
		return packages[i].Arch < packages[j].Arch
	})
}
