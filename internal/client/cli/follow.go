package cli

import (
	"context"
)

func (c *Cli) runFollow(ctx context.Context, args []string, follow bool) error {
	id, err := parseUserID(args)
	if err != nil {
		return err
	}

	token, err := c.sessions.Token(ctx)
	if err != nil {
		return err
	}

	if follow {
		if err := c.api.Follow(ctx, token, id); err != nil {
			return err
		}
		c.io.Printf("✓ Subscribed to user %d\n", id)
		return nil
	}

	if err := c.api.Unfollow(ctx, token, id); err != nil {
		return err
	}
	c.io.Printf("✓ Unsubscribed from user %d\n", id)
	return nil
}
