package cli

import (
	"context"
	"fmt"
)

// ErrUnknownCommand команда не распознана
var ErrUnknownCommand = fmt.Errorf("unknown command")

// Run выполняет команду с аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "me":
		return c.runMe(ctx)
	case "show":
		return c.runShow(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "tags":
		return c.runTags(ctx, args)
	case "review":
		return c.runReview(ctx)
	case "search":
		return c.runSearch(ctx, args)
	case "follow":
		return c.runFollow(ctx, args, true)
	case "unfollow":
		return c.runFollow(ctx, args, false)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}
