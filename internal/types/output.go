package types

// TransactionMember is one package change tracked by the engine while a
// transaction plan is built and executed.
type TransactionMember struct {
	Package Package
	State   ActionCode
}

// PlanResult is the engine's answer to building a transaction plan.
type PlanResult struct {
	Code     int
	Messages []string
}

// OutcomeRecord describes what happened to one unit of requested work.
type OutcomeRecord struct {
	Name       string
	Status     ActionType
	ActionCode ActionCode
	Package    Package
	// Requirement is the original requirement string of a missing package.
	Requirement string
}

func (r OutcomeRecord) Missing() bool {
	return r.Status == ActionTypeMissing
}

// ListEntry is one package reported by the list command.
type ListEntry struct {
	Package Package
	Status  ListStatus
}

// CleanResult is the outcome of clearing one cache category.
type CleanResult struct {
	Category CacheCategory
	Code     int
	Removed  int
	Messages []string
}
