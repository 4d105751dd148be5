package validators

// FailAction decides whether a warning blocks the run.
type FailAction string

const (
	ActionHard FailAction = "HARD"
	ActionSoft FailAction = "SOFT"
)

// failActions maps "<validator>:<issue>" to an action. Issues not
// listed fall through to the validator wildcard, then to SOFT. The
// table is the single source of truth for blocking behavior; validators
// themselves never decide it.
var failActions = map[string]FailAction{
	ValidatorTitleTemplate + ":" + IssueMissingTitle:    ActionHard,
	ValidatorTitleTemplate + ":" + IssueTooShort:        ActionHard,
	ValidatorTitleTemplate + ":" + IssueTooLong:         ActionHard,
	ValidatorTitleTemplate + ":" + IssuePatternMismatch: ActionHard,

	ValidatorDuplicateStem + ":*": ActionSoft,
	ValidatorLayerCount + ":*":    ActionSoft,

	"validation_error:*": ActionHard,
}

// GetFailAction looks up the action for a warning. The lookup key
// prefers the validator name (falling back to the warning type) and the
// issue code (falling back to the reason), trying the specific entry
// before the wildcard. Unknown warnings are SOFT.
func GetFailAction(w Warning) FailAction {
	source := w.Validator
	if source == "" {
		source = w.Type
	}
	if w.Type == "validation_error" {
		source = w.Type
	}

	code := w.Issue
	if code == "" {
		code = w.Reason
	}

	if code != "" {
		if action, ok := failActions[source+":"+code]; ok {
			return action
		}
	}
	if action, ok := failActions[source+":*"]; ok {
		return action
	}
	return ActionSoft
}

// FirstHardWarning returns the first warning whose policy action is
// HARD, in validator emission order.
func FirstHardWarning(warnings []Warning) (Warning, bool) {
	for _, w := range warnings {
		if GetFailAction(w) == ActionHard {
			return w, true
		}
	}
	return Warning{}, false
}
