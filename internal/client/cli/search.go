package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	tags := splitTags(strings.Join(args, ","))
	if len(tags) == 0 {
		return fmt.Errorf("usage: search tag1,tag2,...")
	}

	users, err := c.api.Search(ctx, tags)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		c.io.Println("No users found")
		return nil
	}

	c.io.Printf("Found %d user(s):\n", len(users))
	for _, u := range users {
		c.printUserLine(u)
	}
	return nil
}
