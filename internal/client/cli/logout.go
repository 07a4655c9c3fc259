package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/pautinka/internal/client/auth"
)

// runLogout удаляет локальную сессию. Сервер не хранит сессий,
// так что токен просто перестает использоваться и истечет сам.
func (c *Cli) runLogout(ctx context.Context) error {
	session, err := c.sessions.Session(ctx)
	if errors.Is(err, auth.ErrNotLoggedIn) {
		c.io.Println("Not logged in, nothing to do.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.sessions.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Printf("✓ Logged out %s\n", session.Login)
	return nil
}
