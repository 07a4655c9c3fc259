package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/iudanet/pautinka/pkg/api"
)

func (c *Cli) runReview(ctx context.Context) error {
	token, err := c.sessions.Token(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== New work history entry ===")
	c.io.Println()

	var req pkgapi.WorkReviewRequest
	prompts := []struct {
		target *string
		prompt string
	}{
		{target: &req.Post, prompt: "Post: "},
		{target: &req.CompanyName, prompt: "Company: "},
		{target: &req.SubcompanyName, prompt: "Department (optional): "},
		{target: &req.DateStart, prompt: "Start date YYYY-MM-DD (empty for today): "},
		{target: &req.DateEnd, prompt: "End date YYYY-MM-DD (empty if current): "},
	}
	for _, p := range prompts {
		value, err := c.io.ReadInput(p.prompt)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		*p.target = value
	}

	if err := c.api.CreateReview(ctx, token, req); err != nil {
		return err
	}

	c.io.Println("✓ Work history entry added")
	return nil
}
