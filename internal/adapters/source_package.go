package adapters

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	rpm "github.com/cavaliercoder/go-rpm"

	"yyoom/internal/ports"
	"yyoom/internal/types"
)

// rpmLeadSource is the lead type of a source package.
const rpmLeadSource = 1

// SourcePackageAdapter reads build requirements from a source RPM.
type SourcePackageAdapter struct{}

func NewSourcePackageAdapter() SourcePackageAdapter {
	return SourcePackageAdapter{}
}

// BuildRequires returns the package's requirements, skipping rpmlib()
// pseudo-requirements that rpm satisfies internally.
func (a SourcePackageAdapter) BuildRequires(path string) ([]types.Requirement, error) {
	pkg, err := rpm.OpenPackageFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cannot read source package %s", path)).
			WithCause(err)
	}
	if pkg.Lead.Type != rpmLeadSource {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s is not a source package", path))
	}
	return requirementsFromDependencies(pkg.Requires()), nil
}

func requirementsFromDependencies(deps []rpm.Dependency) []types.Requirement {
	seen := map[string]struct{}{}
	var out []types.Requirement
	for _, dep := range deps {
		if isRpmlibDependency(dep) {
			continue
		}
		req := requirementFromDependency(dep)
		if _, ok := seen[req.Raw]; ok {
			continue
		}
		seen[req.Raw] = struct{}{}
		out = append(out, req)
	}
	return out
}

func isRpmlibDependency(dep rpm.Dependency) bool {
	return dep.Flags()&rpm.DepFlagRpmlib != 0 || strings.HasPrefix(dep.Name(), "rpmlib(")
}

func requirementFromDependency(dep rpm.Dependency) types.Requirement {
	req := types.Requirement{Name: dep.Name(), Raw: dep.Name()}
	op := dependencyOp(dep.Flags())
	if op == types.ConstraintOpNone || dep.Version() == "" {
		return req
	}
	evr := types.EVR{Epoch: dep.Epoch(), Version: dep.Version(), Release: dep.Release()}
	req.Clauses = []types.VersionClause{{Op: op, EVR: evr}}
	req.Raw = fmt.Sprintf("%s %s %s", dep.Name(), op, evr)
	return req
}

func dependencyOp(flags int) types.ConstraintOp {
	switch flags & (rpm.DepFlagLesser | rpm.DepFlagGreater | rpm.DepFlagEqual) {
	case rpm.DepFlagLesserOrEqual:
		return types.ConstraintOpLte
	case rpm.DepFlagGreaterOrEqual:
		return types.ConstraintOpGte
	case rpm.DepFlagEqual:
		return types.ConstraintOpEq
	case rpm.DepFlagLesser:
		return types.ConstraintOpLt
	case rpm.DepFlagGreater:
		return types.ConstraintOpGt
	default:
		return types.ConstraintOpNone
	}
}

var _ ports.SourcePackagePort = SourcePackageAdapter{}
