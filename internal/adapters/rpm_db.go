package adapters

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"yyoom/internal/shared"
	"yyoom/internal/types"
)

const rpmQueryFormat = "%{NAME}\\t%{EPOCHNUM}\\t%{VERSION}\\t%{RELEASE}\\t%{ARCH}\\t[%{PROVIDENAME} ]\\n"

// RpmDBAdapter reads and changes the installed package set through the rpm
// command line.
type RpmDBAdapter struct {
	RpmPath string
	Runner  CommandRunner
}

func NewRpmDBAdapter(rpmPath string, runner CommandRunner) RpmDBAdapter {
	if strings.TrimSpace(rpmPath) == "" {
		rpmPath = "rpm"
	}
	if runner == nil {
		runner = ExecCommandRunner{}
	}
	return RpmDBAdapter{RpmPath: rpmPath, Runner: runner}
}

// Installed lists every package in the RPM database. gpg-pubkey entries
// are not packages and are skipped.
func (a RpmDBAdapter) Installed(ctx context.Context) ([]types.Package, error) {
	args := []string{"-qa", "--qf", rpmQueryFormat}
	output, err := a.Runner.Output(ctx, a.RpmPath, args...)
	if err != nil {
		return nil, shared.EngineError("rpm", args[:1], err)
	}
	return parseRpmQuery(string(output))
}

func parseRpmQuery(output string) ([]types.Package, error) {
	var packages []types.Package
	for lineNo, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("malformed rpm query line %d: %q", lineNo+1, line)
		}
		if fields[0] == "gpg-pubkey" {
			continue
		}
		epoch, err := parseEpoch(fields[1])
		if err != nil {
			return nil, fmt.Errorf("rpm query line %d: %w", lineNo+1, err)
		}
		pkg := types.Package{
			Name:    fields[0],
			Epoch:   epoch,
			Version: fields[2],
			Release: fields[3],
			Arch:    fields[4],
			Repo:    types.InstalledRepo,
		}
		if len(fields) > 5 {
			pkg.Provides = shared.UniqueStrings(strings.Fields(fields[5]))
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

func parseEpoch(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "(none)" {
		return 0, nil
	}
	epoch, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid epoch %q", value)
	}
	return epoch, nil
}

// Erase removes packages by name-version-release.arch. With test set, rpm
// only checks that the removal would succeed.
func (a RpmDBAdapter) Erase(ctx context.Context, specs []string, test bool, stdout func(string), stderr func(string)) error {
	return a.stream(ctx, "-e", specs, test, stdout, stderr)
}

// Upgrade installs or upgrades from package files.
func (a RpmDBAdapter) Upgrade(ctx context.Context, files []string, test bool, stdout func(string), stderr func(string)) error {
	return a.stream(ctx, "-U", files, test, stdout, stderr)
}

func (a RpmDBAdapter) stream(ctx context.Context, mode string, targets []string, test bool, stdout func(string), stderr func(string)) error {
	if len(targets) == 0 {
		return nil
	}
	args := []string{mode}
	if test {
		args = append(args, "--test")
	}
	args = append(args, targets...)
	return a.Runner.Stream(ctx, stdout, stderr, a.RpmPath, args...)
}
