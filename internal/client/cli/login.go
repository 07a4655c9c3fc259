package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	login, err := c.io.ReadInput("Email or phone: ")
	if err != nil {
		return fmt.Errorf("failed to read login: %w", err)
	}

	password, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.sessions.Login(ctx, login, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("User ID: %d\n", session.UserID)
	c.io.Printf("Session expires: %s\n", session.ExpiresAt.Format(time.RFC3339))

	return nil
}
