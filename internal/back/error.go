package back

import "fmt"

// Codes identifying which submission rule rejected a match. They are part of
// the API surface, don't rename them.
const (
	RuleEmptyMatch       = "EmptyMatch"
	RuleInvalidScoreline = "InvalidScoreline"
	RuleIneligibleMatch  = "IneligibleMatch"
	RuleSamePlayer       = "SamePlayer"
)

// A RuleError rejects a match submission because of the submitted data
// itself, before anything is written. It is safe to echo to the end-user.
type RuleError struct {
	Code   string
	Reason string
}

func (e RuleError) Error() string {
	return e.Reason
}

func ruleErrorf(code string, format string, args ...interface{}) RuleError {
	return RuleError{
		Code:   code,
		Reason: fmt.Sprintf(format, args...),
	}
}
