package adapters

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"yyoom/internal/ports"
	"yyoom/internal/shared"
	"yyoom/internal/types"
)

// YumEngineConfig locates the host state the engine works on.
type YumEngineConfig struct {
	CacheDir  string
	LockFile  string
	RpmPath   string
	ReposFile string
	// HTTP settings for package downloads; zero values select defaults.
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
	// SkipHeaderCheck trusts the repository checksum alone for downloads.
	SkipHeaderCheck bool
}

// YumEngineAdapter is the package engine backed by the rpm command, the
// repositories' cached primary_db files and a flock-based database lock.
type YumEngineAdapter struct {
	rpmdb    RpmDBAdapter
	primary  PrimaryDBAdapter
	repos    RepoConfigAdapter
	fetch    PackageFetchAdapter
	lock     *LockFileAdapter
	cacheDir string

	loaded    bool
	installed map[string]types.Package
	baseURLs  map[string]string

	installs  []types.Package
	erases    []types.Package
	members   []types.TransactionMember
	files     map[string]string
	downgrade bool
}

func NewYumEngineAdapter(cfg YumEngineConfig, runner CommandRunner) *YumEngineAdapter {
	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	fetch := NewPackageFetchAdapter(cfg.HTTPTimeoutSec, cfg.HTTPRetries, cfg.HTTPRetryDelayMs)
	fetch.VerifyHeader = !cfg.SkipHeaderCheck
	return &YumEngineAdapter{
		rpmdb:    NewRpmDBAdapter(cfg.RpmPath, runner),
		primary:  NewPrimaryDBAdapter(),
		repos:    NewRepoConfigAdapter(nil, cfg.ReposFile, cacheDir),
		fetch:    fetch,
		lock:     NewLockFileAdapter(cfg.LockFile),
		cacheDir: cacheDir,
	}
}

func (a *YumEngineAdapter) Lock(ctx context.Context) error {
	return a.lock.Lock(ctx)
}

func (a *YumEngineAdapter) Unlock() error {
	return a.lock.Unlock()
}

// Packages reads the RPM database and every enabled repository and splits
// them into the engine's package views.
func (a *YumEngineAdapter) Packages(ctx context.Context) (types.PackageLists, error) {
	installed, err := a.rpmdb.Installed(ctx)
	if err != nil {
		return types.PackageLists{}, err
	}
	repos, err := a.repos.Repos()
	if err != nil {
		return types.PackageLists{}, err
	}

	a.installed = map[string]types.Package{}
	for _, pkg := range installed {
		a.installed[pkg.NEVRA()] = pkg
	}
	a.baseURLs = map[string]string{}
	a.loaded = true

	lists := types.PackageLists{Installed: installed}
	inRepo := map[string]struct{}{}
	for _, repo := range repos {
		a.baseURLs[repo.ID] = repo.BaseURL
		packages, err := a.primary.Packages(ctx, repo.ID, primaryDBPath(a.cacheDir, repo.ID))
		if err != nil {
			if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
				log.Ctx(ctx).Warn().Str("repo", repo.ID).Msg("repository metadata not cached, skipping")
				continue
			}
			return types.PackageLists{}, err
		}
		for _, pkg := range packages {
			inRepo[pkg.NEVRA()] = struct{}{}
			if _, ok := a.installed[pkg.NEVRA()]; ok {
				lists.Reinstall = append(lists.Reinstall, pkg)
				continue
			}
			lists.Available = append(lists.Available, pkg)
		}
	}
	for _, pkg := range installed {
		if _, ok := inRepo[pkg.NEVRA()]; !ok {
			lists.Extras = append(lists.Extras, pkg)
		}
	}
	log.Ctx(ctx).Debug().
		Int("installed", len(lists.Installed)).
		Int("available", len(lists.Available)).
		Int("extras", len(lists.Extras)).
		Int("reinstall", len(lists.Reinstall)).
		Msg("package views loaded")
	return lists, nil
}

func (a *YumEngineAdapter) StageInstall(pkg types.Package) error {
	a.installs = appendUnique(a.installs, pkg)
	return nil
}

func (a *YumEngineAdapter) StageErase(pkg types.Package) error {
	a.erases = appendUnique(a.erases, pkg)
	return nil
}

func appendUnique(packages []types.Package, pkg types.Package) []types.Package {
	for _, existing := range packages {
		if existing.NEVRA() == pkg.NEVRA() {
			return packages
		}
	}
	return append(packages, pkg)
}

// BuildTransaction turns the staged intents into members. Installs that are
// already satisfied and erases of packages not installed are dropped.
func (a *YumEngineAdapter) BuildTransaction(ctx context.Context) (types.PlanResult, error) {
	if !a.loaded {
		if _, err := a.Packages(ctx); err != nil {
			return types.PlanResult{}, err
		}
	}
	a.members = nil
	a.downgrade = false

	staged := map[string]struct{}{}
	for _, pkg := range a.erases {
		staged[pkg.NEVRA()] = struct{}{}
	}
	var conflicts []string
	for _, pkg := range a.installs {
		if _, ok := staged[pkg.NEVRA()]; ok {
			conflicts = append(conflicts, fmt.Sprintf("%s is staged for both install and erase", pkg))
		}
	}
	if len(conflicts) > 0 {
		return types.PlanResult{Code: types.PlanError, Messages: conflicts}, nil
	}

	for _, pkg := range a.erases {
		if _, ok := a.installed[pkg.NEVRA()]; !ok {
			log.Ctx(ctx).Debug().Str("package", pkg.String()).Msg("not installed, nothing to erase")
			continue
		}
		a.members = append(a.members, types.TransactionMember{Package: pkg, State: types.ActionErase})
	}
	for _, pkg := range a.installs {
		if _, ok := a.installed[pkg.NEVRA()]; ok {
			log.Ctx(ctx).Debug().Str("package", pkg.String()).Msg("already installed")
			continue
		}
		state := types.ActionInstall
		if newest, ok := a.newestInstalled(pkg.Name, pkg.Arch); ok {
			if pkg.EVR().Compare(newest.EVR()) > 0 {
				state = types.ActionUpdate
			} else {
				a.downgrade = true
			}
		}
		a.members = append(a.members, types.TransactionMember{Package: pkg, State: state})
	}
	if len(a.members) == 0 {
		return types.PlanResult{Code: types.PlanNothingToDo}, nil
	}
	return types.PlanResult{Code: types.PlanReady}, nil
}

func (a *YumEngineAdapter) newestInstalled(name string, arch string) (types.Package, bool) {
	var newest types.Package
	found := false
	for _, pkg := range a.installed {
		if pkg.Name != name || pkg.Arch != arch {
			continue
		}
		if !found || pkg.EVR().Compare(newest.EVR()) > 0 {
			newest = pkg
			found = true
		}
	}
	return newest, found
}

// RunTransaction executes the members with rpm, erases first. A failed test
// run is an engine error; a failed commit marks the phase's members failed.
func (a *YumEngineAdapter) RunTransaction(ctx context.Context, mode types.RunMode, callback ports.TransactionCallback) error {
	if len(a.members) == 0 {
		return nil
	}
	if err := a.fetchFiles(ctx); err != nil {
		return err
	}
	test := mode == types.RunModeTest

	var eraseIdx, installIdx []int
	for i, member := range a.members {
		if member.State == types.ActionErase {
			eraseIdx = append(eraseIdx, i)
		} else {
			installIdx = append(installIdx, i)
		}
	}

	phases := []struct {
		indexes []int
		run     func(targets []string) error
		target  func(pkg types.Package) string
	}{
		{
			indexes: eraseIdx,
			target:  func(pkg types.Package) string { return pkg.Spec() },
			run: func(targets []string) error {
				return a.rpmdb.Erase(ctx, targets, test, callback.ScriptOutput, callback.ErrorLine)
			},
		},
		{
			indexes: installIdx,
			target:  func(pkg types.Package) string { return a.files[pkg.NEVRA()] },
			run: func(targets []string) error {
				if a.downgrade {
					targets = append([]string{"--oldpackage"}, targets...)
				}
				return a.rpmdb.Upgrade(ctx, targets, test, callback.ScriptOutput, callback.ErrorLine)
			},
		},
	}
	for _, phase := range phases {
		if len(phase.indexes) == 0 {
			continue
		}
		targets := make([]string, 0, len(phase.indexes))
		for _, i := range phase.indexes {
			callback.Event(a.members[i], mode, types.MemberStarted)
			targets = append(targets, phase.target(a.members[i].Package))
		}
		if err := phase.run(targets); err != nil {
			if test {
				return shared.EngineError("RunTransaction", []string{string(mode)}, err)
			}
			log.Ctx(ctx).Error().Err(err).Msg("rpm transaction phase failed")
			for _, i := range phase.indexes {
				a.members[i].State = types.ActionFailed
				callback.Event(a.members[i], mode, types.MemberFailed)
			}
			continue
		}
		for _, i := range phase.indexes {
			callback.Event(a.members[i], mode, types.MemberCompleted)
		}
	}
	return nil
}

// fetchFiles downloads the package files of install members once per
// transaction.
func (a *YumEngineAdapter) fetchFiles(ctx context.Context) error {
	if a.files == nil {
		a.files = map[string]string{}
	}
	for _, member := range a.members {
		if member.State == types.ActionErase {
			continue
		}
		pkg := member.Package
		if _, ok := a.files[pkg.NEVRA()]; ok {
			continue
		}
		dir := filepath.Join(a.cacheDir, pkg.Repo, "packages")
		path, err := a.fetch.Fetch(ctx, a.baseURLs[pkg.Repo], pkg, dir)
		if err != nil {
			return err
		}
		a.files[pkg.NEVRA()] = path
	}
	return nil
}

func (a *YumEngineAdapter) Members() []types.TransactionMember {
	out := make([]types.TransactionMember, len(a.members))
	copy(out, a.members)
	return out
}

// CloseTransaction drops all staged and planned state.
func (a *YumEngineAdapter) CloseTransaction() error {
	a.installs = nil
	a.erases = nil
	a.members = nil
	a.files = nil
	a.downgrade = false
	a.loaded = false
	return nil
}

var _ ports.TransactionEnginePort = (*YumEngineAdapter)(nil)
