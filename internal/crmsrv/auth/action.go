package auth

import "github.com/quotaflow/quotaflow/internal/common/apperrors"

// Action is the closed set of operations the auth endpoint supports. The
// request body carries it as a discriminator field; anything outside the set
// is rejected at parse time so dispatch never falls through.
type Action string

const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"
)

// ParseAction maps the wire discriminator to an Action. Unknown or missing
// values yield ErrInvalidAction.
func ParseAction(s string) (Action, apperrors.Error) {
	switch Action(s) {
	case ActionRegister:
		return ActionRegister, nil
	case ActionLogin:
		return ActionLogin, nil
	default:
		return "", ErrInvalidAction
	}
}
