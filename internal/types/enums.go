package types

type ConstraintOp string

const (
	ConstraintOpNone ConstraintOp = ""
	ConstraintOpEq   ConstraintOp = "="
	ConstraintOpEq2  ConstraintOp = "=="
	ConstraintOpNe   ConstraintOp = "!="
	ConstraintOpGte  ConstraintOp = ">="
	ConstraintOpLte  ConstraintOp = "<="
	ConstraintOpGt   ConstraintOp = ">"
	ConstraintOpLt   ConstraintOp = "<"
)

// ListCategory is a category accepted by the list command.
type ListCategory string

const (
	ListInstalled ListCategory = "installed"
	ListAvailable ListCategory = "available"
	ListExtras    ListCategory = "extras"
)

type ListStatus string

const (
	StatusInstalled ListStatus = "installed"
	StatusAvailable ListStatus = "available"
)

// ActionType is the reported classification of a transaction member.
type ActionType string

const (
	ActionTypeInstall ActionType = "install"
	ActionTypeUpgrade ActionType = "upgrade"
	ActionTypeErase   ActionType = "erase"
	ActionTypeMissing ActionType = "missing"
	ActionTypeError   ActionType = "error"
	ActionTypeOther   ActionType = "other"
)

// ActionCode is the engine's state code for a transaction member.
type ActionCode int

const (
	ActionUpdate      ActionCode = 10
	ActionInstall     ActionCode = 20
	ActionTrueInstall ActionCode = 30
	ActionErase       ActionCode = 40
	ActionObsoleted   ActionCode = 50
	ActionObsoleting  ActionCode = 60
	ActionAvailable   ActionCode = 70
	ActionUpdated     ActionCode = 90
	ActionFailed      ActionCode = 100
)

// RunMode selects between the dry-run and the real transaction run.
type RunMode string

const (
	RunModeTest   RunMode = "test"
	RunModeCommit RunMode = "commit"
)

// MemberEvent is a progress event reported for one transaction member.
type MemberEvent string

const (
	MemberStarted   MemberEvent = "started"
	MemberCompleted MemberEvent = "completed"
	MemberFailed    MemberEvent = "failed"
)

// CacheCategory is one of the engine caches cleared by clean-caches.
type CacheCategory string

const (
	CachePackages CacheCategory = "packages"
	CacheHeaders  CacheCategory = "headers"
	CacheMetadata CacheCategory = "metadata"
	CacheIndex    CacheCategory = "index"
	CacheDatabase CacheCategory = "database"
)

// CleanOrder is the fixed order in which caches are cleared.
var CleanOrder = []CacheCategory{
	CachePackages,
	CacheHeaders,
	CacheMetadata,
	CacheIndex,
	CacheDatabase,
}

// Plan result codes returned by the engine when building a transaction.
const (
	PlanNothingToDo = 0
	PlanError       = 1
	PlanReady       = 2
)
