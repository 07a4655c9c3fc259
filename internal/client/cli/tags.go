package cli

import (
	"context"
	"strings"
)

// runTags без аргументов показывает теги, с аргументом заменяет их.
// Пустая строка "" удаляет все теги.
func (c *Cli) runTags(ctx context.Context, args []string) error {
	token, err := c.sessions.Token(ctx)
	if err != nil {
		return err
	}

	var tags []string
	if len(args) == 0 {
		tags, err = c.api.MyTags(ctx, token)
	} else {
		tags, err = c.api.SetMyTags(ctx, token, splitTags(strings.Join(args, ",")))
	}
	if err != nil {
		return err
	}

	if len(tags) == 0 {
		c.io.Println("No tags")
		return nil
	}
	c.io.Printf("Tags: %s\n", strings.Join(tags, ", "))
	return nil
}
