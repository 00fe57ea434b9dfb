package auth

import "errors"

var ErrInvalidToken = errors.New("auth: invalid context token")

// ContextAuthenticator signs the browsing-context cookie so a browser can
// only ever present the context it was given.
type ContextAuthenticator interface {
	Issue(contextID string) (string, error)
	Validate(token string) (string, error)
}
