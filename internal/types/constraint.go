package types

import "strings"

// VersionClause is one comparison of a requirement's version constraint.
type VersionClause struct {
	Op  ConstraintOp
	EVR EVR
}

// Requirement is a capability name with an optional version constraint.
type Requirement struct {
	Name    string
	Clauses []VersionClause
	Raw     string
}

func (r Requirement) Unconstrained() bool {
	return len(r.Clauses) == 0
}

func (r Requirement) String() string {
	if strings.TrimSpace(r.Raw) != "" {
		return r.Raw
	}
	parts := make([]string, 0, len(r.Clauses))
	for _, clause := range r.Clauses {
		parts = append(parts, string(clause.Op)+clause.EVR.String())
	}
	return r.Name + strings.Join(parts, ",")
}

// IntentKind distinguishes install from erase intents.
type IntentKind string

const (
	IntentInstall IntentKind = "install"
	IntentErase   IntentKind = "erase"
)

// TransactionIntent is a requested change produced by a command handler.
type TransactionIntent struct {
	Kind        IntentKind
	Requirement string
	PreferRepos []string
}
