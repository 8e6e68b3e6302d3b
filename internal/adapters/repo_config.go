package adapters

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"yyoom/internal/types"
)

// primaryDBPath is where a repository's primary_db lives inside the cache.
func primaryDBPath(cacheDir string, repoID string) string {
	return filepath.Join(cacheDir, repoID, "gen", "primary_db.sqlite")
}

// RepoConfigAdapter resolves the enabled repositories, either from a
// repository definitions file or, without one, from the cache directory.
type RepoConfigAdapter struct {
	Fs       afero.Fs
	Path     string
	CacheDir string
}

func NewRepoConfigAdapter(fs afero.Fs, path string, cacheDir string) RepoConfigAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return RepoConfigAdapter{Fs: fs, Path: path, CacheDir: cacheDir}
}

// Repos returns the enabled repositories in a stable order.
func (a RepoConfigAdapter) Repos() ([]types.RepoDefinition, error) {
	if strings.TrimSpace(a.Path) != "" {
		return a.load(a.Path)
	}
	return a.discover()
}

func (a RepoConfigAdapter) load(path string) ([]types.RepoDefinition, error) {
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("repository definitions file not found").
			WithCause(err)
	}
	var file types.RepoFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse repository definitions yaml").
			WithCause(err)
	}
	seen := map[string]struct{}{}
	var repos []types.RepoDefinition
	for i, repo := range file.Repos {
		repo.ID = strings.TrimSpace(repo.ID)
		if repo.ID == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("repository entry %d has no id", i))
		}
		if repo.ID == types.InstalledRepo {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("repository id %q is reserved", repo.ID))
		}
		if _, ok := seen[repo.ID]; ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate repository id %q", repo.ID))
		}
		seen[repo.ID] = struct{}{}
		if !repo.IsEnabled() {
			continue
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// discover treats every cache subdirectory holding a primary_db as an
// enabled repository without a base URL.
func (a RepoConfigAdapter) discover() ([]types.RepoDefinition, error) {
	if strings.TrimSpace(a.CacheDir) == "" {
		return nil, nil
	}
	entries, err := afero.ReadDir(a.Fs, a.CacheDir)
	if err != nil {
		exists, _ := afero.DirExists(a.Fs, a.CacheDir)
		if !exists {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read cache directory").
			WithCause(err)
	}
	var repos []types.RepoDefinition
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == types.InstalledRepo {
			continue
		}
		ok, err := afero.Exists(a.Fs, primaryDBPath(a.CacheDir, entry.Name()))
		if err != nil || !ok {
			continue
		}
		repos = append(repos, types.RepoDefinition{ID: entry.Name()})
	}
	sort.Slice(repos, func(i, j int) bool {
		return repos[i].ID < repos[j].ID
	})
	return repos, nil
}
