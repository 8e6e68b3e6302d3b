package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yyoom/internal/types"
)

func evr(raw string) types.EVR {
	parsed, err := ParseEVR(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestParsedEVRCompare(t *testing.T) {
	tests := []struct {
		a      string
		b      string
		expect int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.0.1", -1},
		{"1.10", "1.9", 1},
		{"1:1.0", "2.0", 1},
		{"2.0-1", "2.0-2", -1},
		{"2.0-10", "2.0-9", 1},
		{"1.0~rc1", "1.0", -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expect, evr(tt.a).Compare(evr(tt.b)))
		})
	}
}

func TestVersionCacheCompareIsSymmetric(t *testing.T) {
	cache := newVersionCache()
	assert.Equal(t, 1, cache.compare(evr("2.0"), evr("1.0")))
	assert.Equal(t, -1, cache.compare(evr("1.0"), evr("2.0")))
	assert.Len(t, cache.results, 2)
}

func TestSatisfiesClause(t *testing.T) {
	cache := newVersionCache()
	tests := []struct {
		name      string
		candidate string
		op        types.ConstraintOp
		want      string
		expect    bool
	}{
		{"eq ignores release", "2.0-3", types.ConstraintOpEq, "2.0", true},
		{"eq with release", "2.0-3", types.ConstraintOpEq, "2.0-4", false},
		{"eq2", "2.0-3", types.ConstraintOpEq2, "2.0-3", true},
		{"ne", "2.0-3", types.ConstraintOpNe, "2.0", false},
		{"gte equal", "2.0-1", types.ConstraintOpGte, "2.0", true},
		{"gte lower", "1.9-9", types.ConstraintOpGte, "2.0", false},
		{"lte", "1.9", types.ConstraintOpLte, "2.0", true},
		{"gt equal", "2.0-1", types.ConstraintOpGt, "2.0", false},
		{"gt release", "2.0-2", types.ConstraintOpGt, "2.0-1", true},
		{"lt", "1.0", types.ConstraintOpLt, "2.0", true},
		{"epoch wins", "1:1.0", types.ConstraintOpGt, "5.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause := types.VersionClause{Op: tt.op, EVR: evr(tt.want)}
			assert.Equal(t, tt.expect, cache.satisfiesClause(evr(tt.candidate), clause))
		})
	}
}

func TestSatisfiesAllNoClauses(t *testing.T) {
	assert.True(t, newVersionCache().satisfiesAll(evr("1.0"), nil))
}

func TestSortPackagesOrdersByVersionThenRepo(t *testing.T) {
	packages := []types.Package{
		{Name: "foo", Version: "1.0", Release: "1", Arch: "x86_64", Repo: "base"},
		{Name: "foo", Version: "2.0", Release: "1", Arch: "x86_64", Repo: "updates"},
		{Name: "foo", Version: "2.0", Release: "1", Arch: "x86_64", Repo: "epel"},
	}
	newVersionCache().sortPackages(packages)
	assert.Equal(t, "epel", packages[0].Repo)
	assert.Equal(t, "updates", packages[1].Repo)
	assert.Equal(t, "1.0", packages[2].Version)
}

func TestSortPackagesPrefersHostArch(t *testing.T) {
	saved := nativeArch
	nativeArch = "x86_64"
	t.Cleanup(func() { nativeArch = saved })

	packages := []types.Package{
		{Name: "foo", Version: "2.0", Release: "1", Arch: "i686", Repo: "base"},
		{Name: "foo", Version: "2.0", Release: "1", Arch: "aarch64", Repo: "base"},
		{Name: "foo", Version: "2.0", Release: "1", Arch: "noarch", Repo: "updates"},
		{Name: "foo", Version: "2.0", Release: "1", Arch: "x86_64", Repo: "updates"},
	}
	newVersionCache().sortPackages(packages)

	var arches []string
	for _, pkg := range packages {
		arches = append(arches, pkg.Arch)
	}
	assert.Equal(t, []string{"x86_64", "noarch", "aarch64", "i686"}, arches)
}

func TestRpmArch(t *testing.T) {
	assert.Equal(t, "x86_64", rpmArch("amd64"))
	assert.Equal(t, "aarch64", rpmArch("arm64"))
	assert.Equal(t, "ppc64le", rpmArch("ppc64le"))
}
