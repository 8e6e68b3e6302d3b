package core

import "yyoom/internal/types"

// ClassifyAction maps an engine member state to the reported action type.
func ClassifyAction(code types.ActionCode) types.ActionType {
	switch code {
	case types.ActionInstall, types.ActionTrueInstall:
		return types.ActionTypeInstall
	case types.ActionUpdate, types.ActionObsoleting:
		return types.ActionTypeUpgrade
	case types.ActionErase, types.ActionObsoleted, types.ActionUpdated:
		return types.ActionTypeErase
	case types.ActionFailed:
		return types.ActionTypeError
	default:
		return types.ActionTypeOther
	}
}
