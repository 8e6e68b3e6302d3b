package integration

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"yyoom/internal/app"
	"yyoom/internal/shared"
)

func startFileRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	server := httptest.NewServer(http.FileServer(http.Dir(root)))
	t.Cleanup(server.Close)
	return server.URL
}

func TestTransactionUpgradeFromHTTPRepo(t *testing.T) {
	baseURL := startFileRepo(t, map[string]string{fooLocation: fooPayload})
	h := newRepoHost(t, baseURL, payloadChecksum(fooPayload))

	err := h.service.Transact(t.Context(), app.TransactRequest{Installs: []string{"foo>=2.0"}})
	require.NoError(t, err)
	assertUpgradeInstalled(t, h)
}

func TestTransactionChecksumMismatchAbortsBeforeRpm(t *testing.T) {
	baseURL := startFileRepo(t, map[string]string{fooLocation: "tampered payload\n"})
	h := newRepoHost(t, baseURL, payloadChecksum(fooPayload))

	err := h.service.Transact(t.Context(), app.TransactRequest{Installs: []string{"foo"}})
	require.Error(t, err)
	require.Equal(t, shared.KindEngineError, shared.KindOf(err))
	require.Empty(t, h.out.String())
	require.Empty(t, h.rpm.ReadCalls(t))
	require.NoFileExists(t, h.downloadedPath())
}

func TestListAgainstRepoHost(t *testing.T) {
	h := newRepoHost(t, "http://127.0.0.1:1", payloadChecksum(fooPayload))

	categories, err := app.ParseListCategories([]string{"available", "installed"})
	require.NoError(t, err)
	require.NoError(t, h.service.List(t.Context(), app.ListRequest{Categories: categories}))
	require.Contains(t, h.out.String(), `"repo": "remote"`)
	require.Contains(t, h.out.String(), `"status": "installed"`)
}
