// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"yyoom/internal/types"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// StubRpm is a fake rpm executable. Queries print the configured installed
// packages; every erase or upgrade is appended to the calls log.
type StubRpm struct {
	Path  string
	Calls string
}

// WriteStubRpm installs a stub rpm in dir whose database holds installed.
func WriteStubRpm(t *testing.T, dir string, installed []types.Package) StubRpm {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	var query strings.Builder
	for _, pkg := range installed {
		fmt.Fprintf(&query, "%s\t%d\t%s\t%s\t%s\t%s \n",
			pkg.Name, pkg.Epoch, pkg.Version, pkg.Release, pkg.Arch, strings.Join(pkg.Provides, " "))
	}
	queryPath := filepath.Join(dir, "rpmdb.txt")
	require.NoError(t, os.WriteFile(queryPath, []byte(query.String()), 0o644))

	stub := StubRpm{Path: filepath.Join(dir, "rpm"), Calls: filepath.Join(dir, "calls.log")}
	script := fmt.Sprintf(`#!/bin/sh
case "$1" in
  -qa) cat %q ;;
  *) echo "$*" >> %q; echo "stub rpm $1" ;;
esac
`, queryPath, stub.Calls)
	require.NoError(t, os.WriteFile(stub.Path, []byte(script), 0o755))
	return stub
}

// ReadCalls returns the erase and upgrade invocations seen by the stub.
func (s StubRpm) ReadCalls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(s.Calls)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

const primaryDBSchema = `
CREATE TABLE packages (
	pkgKey INTEGER PRIMARY KEY,
	pkgId TEXT,
	name TEXT,
	arch TEXT,
	version TEXT,
	epoch TEXT,
	release TEXT,
	location_href TEXT,
	checksum_type TEXT
);
CREATE TABLE provides (
	name TEXT,
	flags TEXT,
	epoch TEXT,
	version TEXT,
	release TEXT,
	pkgKey INTEGER
);
`

// WritePrimaryDB writes a repository primary_db into the engine cache
// layout under cacheDir.
func WritePrimaryDB(t *testing.T, cacheDir string, repoID string, packages []types.Package) {
	t.Helper()
	path := filepath.Join(cacheDir, repoID, "gen", "primary_db.sqlite")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(primaryDBSchema)
	require.NoError(t, err)
	for i, pkg := range packages {
		key := i + 1
		_, err := db.Exec(
			`INSERT INTO packages (pkgKey, pkgId, name, arch, version, epoch, release, location_href, checksum_type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			key, pkg.Checksum, pkg.Name, pkg.Arch, pkg.Version, pkg.Epoch, pkg.Release, pkg.Location, pkg.ChecksumType,
		)
		require.NoError(t, err)
		for _, provide := range append([]string{pkg.Name}, pkg.Provides...) {
			_, err := db.Exec(`INSERT INTO provides (name, pkgKey) VALUES (?, ?)`, provide, key)
			require.NoError(t, err)
		}
	}
}
