// Package identity adapts the external identity collaborator. The core
// never inspects credentials itself; it only needs the authenticated
// caller's opaque id to authorize decisions and scope listings.
package identity

import (
	"context"
)

// Verifier resolves a bearer token to the authenticated actor's id.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (actorID string, err error)
}
