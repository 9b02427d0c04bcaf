package session

import (
	"context"
	"fmt"

	"github.com/comanda-io/comanda/core"
)

// Guard decides whether a role-specific dashboard may run. It is the only
// reader of the store on the way into a protected view.
type Guard struct {
	store  Store
	logger core.Logger
}

// NewGuard creates a guard over the given store.
func NewGuard(store Store, logger core.Logger) *Guard {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Guard{store: store, logger: logger}
}

// Authorize permits entry only when a token is present and the persisted
// role exactly equals required. There is no role hierarchy and no superuser
// bypass; a mismatch sends the user back to login.
func (g *Guard) Authorize(ctx context.Context, required core.Role) (Session, error) {
	s, err := g.store.Load(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("loading session: %w", err)
	}
	if !s.Valid() {
		g.logger.Info("Access denied, no session", map[string]interface{}{
			"operation": "guard_authorize",
			"required":  string(required),
		})
		return Session{}, core.ErrNotAuthenticated
	}
	if s.Role != required {
		g.logger.Info("Access denied, role mismatch", map[string]interface{}{
			"operation": "guard_authorize",
			"required":  string(required),
			"actual":    string(s.Role),
		})
		return Session{}, fmt.Errorf("%w: have %q, need %q", core.ErrRoleMismatch, s.Role, required)
	}
	return s, nil
}

// Logout clears the persisted session synchronously.
func (g *Guard) Logout(ctx context.Context) error {
	return g.store.Clear(ctx)
}
