package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yyoom/internal/shared"
	"yyoom/internal/types"
)

func matcherIndex() PackageIndex {
	return BuildPackageIndex(types.PackageLists{
		Installed: []types.Package{
			testPackage("bar", "1.0-1", types.InstalledRepo, "bar"),
			testPackage("foo", "1.0-1", types.InstalledRepo, "foo"),
		},
		Available: []types.Package{
			testPackage("foo", "1.0-1", "repoA", "foo"),
			testPackage("foo", "2.1-1", "repoB", "foo", "foo-api"),
			testPackage("foo", "3.0-1", "repoC", "foo", "foo-api"),
		},
	})
}

func TestFindReturnsEverySatisfyingPackage(t *testing.T) {
	index := matcherIndex()
	tests := []struct {
		raw    string
		expect []string
	}{
		{"foo", []string{"3.0/repoC", "2.1/repoB", "1.0/installed", "1.0/repoA"}},
		{"foo>=2.0", []string{"3.0/repoC", "2.1/repoB"}},
		{"foo>=2.0,<3.0", []string{"2.1/repoB"}},
		{"foo = 1.0", []string{"1.0/installed", "1.0/repoA"}},
		{"foo!=1.0", []string{"3.0/repoC", "2.1/repoB"}},
		{"foo-api<=2.1-1", []string{"2.1/repoB"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			matches, err := Find(index, tt.raw)
			require.NoError(t, err)
			got := make([]string, 0, len(matches))
			for _, pkg := range matches {
				got = append(got, pkg.Version+"/"+pkg.Repo)
			}
			if diff := cmp.Diff(tt.expect, got); diff != "" {
				t.Fatalf("unexpected matches (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindNeverReturnsViolatingVersion(t *testing.T) {
	index := matcherIndex()
	for _, raw := range []string{"foo>1.0", "foo<3.0", "foo>=2.1-1,<=3.0", "foo!=2.1"} {
		req, err := ParseRequirement(raw)
		require.NoError(t, err)
		matches, err := FindRequirement(index, req)
		require.NoError(t, err)
		cache := newVersionCache()
		for _, pkg := range matches {
			assert.True(t, cache.satisfiesAll(pkg.EVR(), req.Clauses), "%s matched %s", raw, pkg)
		}
	}
}

func TestFindNotFound(t *testing.T) {
	index := matcherIndex()

	matches, err := Find(index, "absent")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, matches)

	_, err = Find(index, "foo>=9.0")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = Find(PackageIndex{}, "foo")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindInvalidRequirementIsNotNotFound(t *testing.T) {
	_, err := Find(matcherIndex(), "foo>=")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, shared.KindResolutionError, shared.KindOf(err))
}

func TestSelectInstall(t *testing.T) {
	index := matcherIndex()
	matches, err := Find(index, "foo")
	require.NoError(t, err)

	tests := []struct {
		name      string
		preferred []string
		expect    string
	}{
		{"no preference picks highest", nil, "repoC"},
		{"preferred repo narrows", []string{"repoA"}, "repoA"},
		{"several preferred picks highest among them", []string{"repoA", "repoB"}, "repoB"},
		{"unknown preferred falls back to all", []string{"nowhere"}, "repoC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, ok := SelectInstall(matches, tt.preferred)
			require.True(t, ok)
			assert.Equal(t, tt.expect, pkg.Repo)
		})
	}

	_, ok := SelectInstall(nil, []string{"repoA"})
	assert.False(t, ok)
}

func TestSelectInstallDoesNotReorderInput(t *testing.T) {
	matches := []types.Package{
		testPackage("foo", "1.0-1", "repoA"),
		testPackage("foo", "2.0-1", "repoB"),
	}
	pkg, ok := SelectInstall(matches, nil)
	require.True(t, ok)
	assert.Equal(t, "2.0", pkg.Version)
	assert.Equal(t, "repoA", matches[0].Repo)
}

func TestSelectInstallPrefersHostArch(t *testing.T) {
	saved := nativeArch
	nativeArch = "x86_64"
	t.Cleanup(func() { nativeArch = saved })

	i686 := testPackage("foo", "2.0-1", "base")
	i686.Arch = "i686"
	pkg, ok := SelectInstall([]types.Package{i686, testPackage("foo", "2.0-1", "base")}, nil)
	require.True(t, ok)
	assert.Equal(t, "x86_64", pkg.Arch)
}

func TestSelectEraseTargetsEveryInstalledMatch(t *testing.T) {
	i686 := testPackage("bar", "1.0-1", types.InstalledRepo)
	i686.Arch = "i686"
	matches := []types.Package{
		testPackage("bar", "1.0-1", types.InstalledRepo),
		testPackage("bar", "1.0-1", "base"),
		i686,
		testPackage("bar", "1.0-1", types.InstalledRepo),
	}

	erased := SelectErase(matches)
	require.Len(t, erased, 2)
	assert.Equal(t, "x86_64", erased[0].Arch)
	assert.Equal(t, "i686", erased[1].Arch)

	assert.Empty(t, SelectErase([]types.Package{testPackage("bar", "1.0-1", "base")}))
}
