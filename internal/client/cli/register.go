package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/iudanet/pautinka/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	var req pkgapi.RegisterRequest
	prompts := []struct {
		target *string
		prompt string
	}{
		{target: &req.Name, prompt: "Name: "},
		{target: &req.Surname, prompt: "Surname: "},
		{target: &req.Email, prompt: "Email (optional): "},
		{target: &req.Phone, prompt: "Phone (optional): "},
	}
	for _, p := range prompts {
		value, err := c.io.ReadInput(p.prompt)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		*p.target = value
	}

	password, err := c.getNewPassword()
	if err != nil {
		return err
	}
	req.Password = password

	c.io.Println()
	c.io.Println("Registering user...")

	session, err := c.sessions.Register(ctx, req)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %d\n", session.UserID)
	c.io.Printf("Logged in as: %s\n", session.Login)

	return nil
}
