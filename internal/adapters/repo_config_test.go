package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoConfigLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/yyoom/repos.yaml", []byte(`repos:
  - id: base
    name: Base OS
    baseurl: https://mirror.example.com/base
  - id: debuginfo
    baseurl: https://mirror.example.com/debug
    enabled: false
  - id: updates
    baseurl: https://mirror.example.com/updates
    enabled: true
`), 0o644))

	repos, err := NewRepoConfigAdapter(fs, "/etc/yyoom/repos.yaml", "/var/cache/yyoom").Repos()
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "base", repos[0].ID)
	assert.Equal(t, "Base OS", repos[0].Name)
	assert.Equal(t, "https://mirror.example.com/updates", repos[1].BaseURL)
}

func TestRepoConfigLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errbuilder.ErrCode
	}{
		{"bad yaml", "repos: [", errbuilder.CodeInvalidArgument},
		{"missing id", "repos:\n  - baseurl: http://x\n", errbuilder.CodeInvalidArgument},
		{"reserved id", "repos:\n  - id: installed\n", errbuilder.CodeInvalidArgument},
		{"duplicate id", "repos:\n  - id: base\n  - id: base\n", errbuilder.CodeAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/repos.yaml", []byte(tt.content), 0o644))
			_, err := NewRepoConfigAdapter(fs, "/repos.yaml", "").Repos()
			require.Error(t, err)
			assert.Equal(t, tt.code, errbuilder.CodeOf(err))
		})
	}

	_, err := NewRepoConfigAdapter(afero.NewMemMapFs(), "/absent.yaml", "").Repos()
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestRepoConfigDiscoversCachedRepos(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cache/updates/gen/primary_db.sqlite", []byte("db"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cache/base/gen/primary_db.sqlite", []byte("db"), 0o644))
	require.NoError(t, fs.MkdirAll("/cache/empty/packages", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/cache/stray.txt", []byte("x"), 0o644))

	repos, err := NewRepoConfigAdapter(fs, "", "/cache").Repos()
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "base", repos[0].ID)
	assert.Equal(t, "updates", repos[1].ID)

	repos, err = NewRepoConfigAdapter(fs, "", "/nowhere").Repos()
	require.NoError(t, err)
	assert.Empty(t, repos)
}
