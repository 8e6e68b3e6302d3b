package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	_ "github.com/mattn/go-sqlite3"

	"yyoom/internal/shared"
	"yyoom/internal/types"
)

const sqlSelectPackages = `SELECT
 pkgKey
 , name
 , arch
 , epoch
 , version
 , release
 , location_href
 , pkgId
 , checksum_type
FROM packages;`

const sqlSelectProvides = `SELECT pkgKey, name FROM provides;`

// PrimaryDBAdapter reads the package list of one repository from its cached
// primary_db SQLite file.
type PrimaryDBAdapter struct{}

func NewPrimaryDBAdapter() PrimaryDBAdapter {
	return PrimaryDBAdapter{}
}

// Packages returns every package of the primary_db at path, tagged with
// repoID.
func (a PrimaryDBAdapter) Packages(ctx context.Context, repoID string, path string) ([]types.Package, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("primary_db for repo %s not found at %s", repoID, path)).
			WithCause(err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, shared.EngineError("OpenPrimaryDB", []string{repoID}, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, sqlSelectPackages)
	if err != nil {
		return nil, shared.EngineError("SelectPackages", []string{repoID}, err)
	}
	defer rows.Close()

	var packages []types.Package
	byKey := map[int64]int{}
	for rows.Next() {
		var (
			key                                     int64
			name, arch, version, release            string
			epoch, location, checksum, checksumType sql.NullString
		)
		if err := rows.Scan(&key, &name, &arch, &epoch, &version, &release, &location, &checksum, &checksumType); err != nil {
			return nil, shared.EngineError("SelectPackages", []string{repoID}, err)
		}
		epochNum, err := parseEpoch(epoch.String)
		if err != nil {
			return nil, shared.EngineError("SelectPackages", []string{repoID, name}, err)
		}
		byKey[key] = len(packages)
		packages = append(packages, types.Package{
			Name:         name,
			Epoch:        epochNum,
			Version:      version,
			Release:      release,
			Arch:         arch,
			Repo:         repoID,
			Location:     location.String,
			Checksum:     checksum.String,
			ChecksumType: checksumType.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, shared.EngineError("SelectPackages", []string{repoID}, err)
	}

	provides, err := db.QueryContext(ctx, sqlSelectProvides)
	if err != nil {
		return nil, shared.EngineError("SelectProvides", []string{repoID}, err)
	}
	defer provides.Close()
	for provides.Next() {
		var key int64
		var name string
		if err := provides.Scan(&key, &name); err != nil {
			return nil, shared.EngineError("SelectProvides", []string{repoID}, err)
		}
		if idx, ok := byKey[key]; ok {
			packages[idx].Provides = append(packages[idx].Provides, name)
		}
	}
	if err := provides.Err(); err != nil {
		return nil, shared.EngineError("SelectProvides", []string{repoID}, err)
	}
	for i := range packages {
		packages[i].Provides = shared.UniqueStrings(packages[i].Provides)
	}
	return packages, nil
}
