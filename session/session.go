// Package session holds the authenticated identity between invocations and
// gates access to role-specific dashboards.
package session

import (
	"context"

	"github.com/comanda-io/comanda/core"
)

// Session is the persisted identity: an opaque bearer token and the role the
// backend granted at login.
type Session struct {
	Token string    `json:"token"`
	Role  core.Role `json:"role"`
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}

// Store persists exactly one session. Writes happen only at login and
// logout; everything else is reads.
type Store interface {
	// Load returns the persisted session, or the zero Session when none
	// exists. A missing session is not an error.
	Load(ctx context.Context) (Session, error)
	// Establish replaces the persisted session.
	Establish(ctx context.Context, s Session) error
	// Clear removes the persisted session. Clearing an empty store is a
	// no-op.
	Clear(ctx context.Context) error
}
