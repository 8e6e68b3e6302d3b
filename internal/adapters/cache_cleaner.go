package adapters

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"yyoom/internal/ports"
	"yyoom/internal/shared"
	"yyoom/internal/types"
)

const DefaultCacheDir = "/var/cache/yyoom"

// repoCachePatterns are globbed inside every repository cache directory.
var repoCachePatterns = map[types.CacheCategory][]string{
	types.CachePackages: {"packages/*.rpm", "packages/*.rpm.part"},
	types.CacheHeaders:  {"headers/*.hdr"},
	types.CacheMetadata: {"repomd.xml", "*.xml.gz", "*.xml.bz2", "*.xml.xz", "repodata/*", "cachecookie", "mirrorlist.txt"},
	types.CacheIndex:    {"gen/*.sqlite", "*.sqlite", "*.sqlite.bz2"},
}

// rootCachePatterns are globbed at the top of the cache directory.
var rootCachePatterns = map[types.CacheCategory][]string{
	types.CacheDatabase: {"rpmdb-indexes/*", "installed.cache"},
}

// CacheCleanerAdapter removes cached files by category. Removing from an
// empty or absent cache succeeds with nothing removed.
type CacheCleanerAdapter struct {
	Fs       afero.Fs
	CacheDir string
}

func NewCacheCleanerAdapter(fs afero.Fs, cacheDir string) CacheCleanerAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	return CacheCleanerAdapter{Fs: fs, CacheDir: cacheDir}
}

func (a CacheCleanerAdapter) Clean(ctx context.Context, category types.CacheCategory) (types.CleanResult, error) {
	result := types.CleanResult{Category: category}
	_, perRepo := repoCachePatterns[category]
	_, atRoot := rootCachePatterns[category]
	if !perRepo && !atRoot {
		result.Code = 1
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown cache category %q", category))
	}
	if err := ctx.Err(); err != nil {
		result.Code = 1
		return result, err
	}

	paths, err := a.match(category)
	if err != nil {
		result.Code = 1
		return result, shared.EngineError("Clean", []string{string(category)}, err)
	}
	var failed []string
	for _, path := range paths {
		if err := a.Fs.RemoveAll(path); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("cannot remove cache file")
			failed = append(failed, path)
			continue
		}
		result.Removed++
	}
	result.Messages = append(result.Messages, fmt.Sprintf("%d %s files removed", result.Removed, category))
	if len(failed) > 0 {
		result.Code = 1
		return result, shared.EngineError("Clean", []string{string(category)},
			fmt.Errorf("%d files could not be removed", len(failed)))
	}
	return result, nil
}

func (a CacheCleanerAdapter) match(category types.CacheCategory) ([]string, error) {
	exists, err := afero.DirExists(a.Fs, a.CacheDir)
	if err != nil || !exists {
		return nil, err
	}
	var paths []string
	for _, pattern := range rootCachePatterns[category] {
		matches, err := afero.Glob(a.Fs, filepath.Join(a.CacheDir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	if patterns, ok := repoCachePatterns[category]; ok {
		entries, err := afero.ReadDir(a.Fs, a.CacheDir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			for _, pattern := range patterns {
				matches, err := afero.Glob(a.Fs, filepath.Join(a.CacheDir, entry.Name(), pattern))
				if err != nil {
					return nil, err
				}
				paths = append(paths, matches...)
			}
		}
	}
	sort.Strings(paths)
	return shared.UniqueStrings(paths), nil
}

var _ ports.CacheCleanerPort = CacheCleanerAdapter{}
