package cli

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/pautinka/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	session, err := c.sessions.Session(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'pautinka login' to authenticate.")
			return nil
		}
		return err
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Server: %s\n", session.Server)
	c.io.Printf("Login: %s\n", session.Login)
	c.io.Printf("User ID: %d\n", session.UserID)
	c.io.Printf("Token expires: %s\n", session.ExpiresAt.Format(time.RFC3339))

	if remaining := time.Until(session.ExpiresAt); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("⚠️  Token has expired. Please login again.")
	}

	return nil
}
