package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"yyoom/internal/shared"
	"yyoom/internal/types"
)

// opTokens is the ordered list of clause operators tried during parsing.
// Longer tokens must precede shorter ones (">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpNe,
	types.ConstraintOpEq2,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

const opChars = "<>=!"

// ParseRequirement splits a raw requirement such as "foo", "foo>=1.2",
// "foo >= 1.2,<2.0" or "foo = 1:2.0-3" into a Requirement. A string without
// an operator is an unconstrained capability reference.
func ParseRequirement(raw string) (types.Requirement, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Requirement{}, shared.ResolutionError(errbuilder.CodeInvalidArgument, "empty requirement", nil)
	}
	idx := strings.IndexAny(trimmed, opChars)
	if idx < 0 {
		if strings.ContainsAny(trimmed, " \t") {
			return types.Requirement{}, invalidRequirement(raw, "unexpected whitespace in name")
		}
		return types.Requirement{Name: trimmed, Raw: trimmed}, nil
	}
	name := strings.TrimSpace(trimmed[:idx])
	if name == "" || strings.ContainsAny(name, " \t") {
		return types.Requirement{}, invalidRequirement(raw, "missing or malformed name")
	}
	var clauses []types.VersionClause
	for _, part := range strings.Split(trimmed[idx:], ",") {
		clause, err := parseClause(strings.TrimSpace(part))
		if err != nil {
			return types.Requirement{}, invalidRequirement(raw, err.Error())
		}
		clauses = append(clauses, clause)
	}
	return types.Requirement{Name: name, Clauses: clauses, Raw: trimmed}, nil
}

func parseClause(part string) (types.VersionClause, error) {
	for _, op := range opTokens {
		if !strings.HasPrefix(part, string(op)) {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(part, string(op)))
		if value == "" || strings.ContainsAny(value, opChars+" \t") {
			return types.VersionClause{}, fmt.Errorf("bad version in clause %q", part)
		}
		evr, err := ParseEVR(value)
		if err != nil {
			return types.VersionClause{}, err
		}
		return types.VersionClause{Op: op, EVR: evr}, nil
	}
	return types.VersionClause{}, fmt.Errorf("unknown operator in clause %q", part)
}

// ParseEVR parses "[epoch:]version[-release]".
func ParseEVR(value string) (types.EVR, error) {
	var evr types.EVR
	rest := strings.TrimSpace(value)
	if before, after, ok := strings.Cut(rest, ":"); ok {
		epoch, err := strconv.Atoi(before)
		if err != nil || epoch < 0 {
			return types.EVR{}, fmt.Errorf("bad epoch in %q", value)
		}
		evr.Epoch = epoch
		rest = after
	}
	if i := strings.LastIndex(rest, "-"); i >= 0 {
		evr.Release = rest[i+1:]
		rest = rest[:i]
		if evr.Release == "" {
			return types.EVR{}, fmt.Errorf("empty release in %q", value)
		}
	}
	if rest == "" {
		return types.EVR{}, fmt.Errorf("empty version in %q", value)
	}
	evr.Version = rest
	return evr, nil
}

func invalidRequirement(raw string, reason string) error {
	return shared.ResolutionError(
		errbuilder.CodeInvalidArgument,
		fmt.Sprintf("invalid requirement %q: %s", raw, reason),
		nil,
	)
}
