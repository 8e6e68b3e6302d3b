package integration

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"yyoom/internal/adapters"
	"yyoom/internal/app"
	"yyoom/internal/types"
	"yyoom/tests/testutil"
)

const (
	fooLocation = "Packages/f/foo-2.1-1.x86_64.rpm"
	fooPayload  = "foo 2.1 package payload\n"
)

type repoHost struct {
	service  app.Service
	out      *bytes.Buffer
	rpm      testutil.StubRpm
	cacheDir string
}

func payloadChecksum(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// newRepoHost prepares a host whose "remote" repository is served from
// baseURL and whose primary_db lists foo with the given checksum.
func newRepoHost(t *testing.T, baseURL string, checksum string) repoHost {
	t.Helper()
	root := t.TempDir()
	cacheDir := filepath.Join(root, "cache")
	stub := testutil.WriteStubRpm(t, filepath.Join(root, "bin"), []types.Package{
		{Name: "foo", Version: "1.0", Release: "1", Arch: "x86_64", Provides: []string{"foo"}},
	})
	testutil.WritePrimaryDB(t, cacheDir, "remote", []types.Package{{
		Name: "foo", Version: "2.1", Release: "1", Arch: "x86_64",
		Location: fooLocation, Checksum: checksum, ChecksumType: "sha256",
	}})
	reposFile := filepath.Join(root, "repos.yaml")
	require.NoError(t, os.WriteFile(reposFile, []byte(fmt.Sprintf("repos:\n  - id: remote\n    baseurl: %s\n", baseURL)), 0o644))

	out := &bytes.Buffer{}
	service := app.NewService(app.Config{
		Engine: adapters.YumEngineConfig{
			CacheDir:         cacheDir,
			LockFile:         filepath.Join(root, "yyoom.lock"),
			RpmPath:          stub.Path,
			ReposFile:        reposFile,
			HTTPTimeoutSec:   10,
			HTTPRetries:      3,
			HTTPRetryDelayMs: 100,
			SkipHeaderCheck:  true,
		},
		Out: out,
	})
	return repoHost{service: service, out: out, rpm: stub, cacheDir: cacheDir}
}

func (h repoHost) downloadedPath() string {
	return filepath.Join(h.cacheDir, "remote", "packages", filepath.Base(fooLocation))
}

func assertUpgradeInstalled(t *testing.T, h repoHost) {
	t.Helper()
	var report []map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &report), h.out.String())
	require.Len(t, report, 1)
	require.Equal(t, "foo", report[0]["name"])
	require.Equal(t, "upgrade", report[0]["action_type"])
	require.Equal(t, "remote", report[0]["repo"])

	data, err := os.ReadFile(h.downloadedPath())
	require.NoError(t, err)
	require.Equal(t, fooPayload, string(data))
	require.Equal(t, []string{
		"-U --test " + h.downloadedPath(),
		"-U " + h.downloadedPath(),
	}, h.rpm.ReadCalls(t))
}
