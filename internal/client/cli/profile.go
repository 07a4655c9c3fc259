package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgapi "github.com/iudanet/pautinka/pkg/api"
)

// patchFields поля профиля, доступные команде edit
var patchFields = map[string]func(p *pkgapi.ProfilePatch, v *string){
	"name":         func(p *pkgapi.ProfilePatch, v *string) { p.Name = v },
	"surname":      func(p *pkgapi.ProfilePatch, v *string) { p.Surname = v },
	"last_name":    func(p *pkgapi.ProfilePatch, v *string) { p.LastName = v },
	"phone":        func(p *pkgapi.ProfilePatch, v *string) { p.Phone = v },
	"email":        func(p *pkgapi.ProfilePatch, v *string) { p.Email = v },
	"university":   func(p *pkgapi.ProfilePatch, v *string) { p.University = v },
	"birthdate":    func(p *pkgapi.ProfilePatch, v *string) { p.Birthdate = v },
	"course":       func(p *pkgapi.ProfilePatch, v *string) { p.Course = v },
	"short_status": func(p *pkgapi.ProfilePatch, v *string) { p.ShortStatus = v },
	"full_status":  func(p *pkgapi.ProfilePatch, v *string) { p.FullStatus = v },
	"about_me":     func(p *pkgapi.ProfilePatch, v *string) { p.AboutMe = v },
	"links":        func(p *pkgapi.ProfilePatch, v *string) { p.Links = v },
}

func (c *Cli) runMe(ctx context.Context) error {
	token, err := c.sessions.Token(ctx)
	if err != nil {
		return err
	}

	me, err := c.api.Me(ctx, token)
	if err != nil {
		return err
	}

	c.printUser(me)
	return nil
}

func (c *Cli) runShow(ctx context.Context, args []string) error {
	id, err := parseUserID(args)
	if err != nil {
		return err
	}

	user, err := c.api.GetUser(ctx, id)
	if err != nil {
		return err
	}
	c.printUser(user)

	tags, err := c.api.UserTags(ctx, id)
	if err != nil {
		return err
	}
	if len(tags) > 0 {
		c.io.Printf("Tags: %s\n", strings.Join(tags, ", "))
	}

	reviews, err := c.api.UserReviews(ctx, id)
	if err != nil {
		return err
	}
	if len(reviews) > 0 {
		c.io.Println("Work history:")
		for _, r := range reviews {
			c.printReview(r)
		}
	}

	return nil
}

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	patch, err := parsePatch(args)
	if err != nil {
		return err
	}

	token, err := c.sessions.Token(ctx)
	if err != nil {
		return err
	}

	if err := c.api.EditMe(ctx, token, patch); err != nil {
		return err
	}

	c.io.Println("✓ Profile updated")
	return nil
}

// parsePatch собирает ProfilePatch из аргументов вида field=value
func parsePatch(args []string) (pkgapi.ProfilePatch, error) {
	var patch pkgapi.ProfilePatch
	if len(args) == 0 {
		return patch, fmt.Errorf("usage: edit field=value... (fields: %s)", strings.Join(patchFieldNames(), ", "))
	}

	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok {
			return patch, fmt.Errorf("expected field=value, got %q", arg)
		}
		field = strings.ToLower(strings.TrimSpace(field))

		set, known := patchFields[field]
		if !known {
			return patch, fmt.Errorf("unknown field %q (fields: %s)", field, strings.Join(patchFieldNames(), ", "))
		}
		if seen[field] {
			return patch, fmt.Errorf("field %q given twice", field)
		}
		seen[field] = true

		set(&patch, &value)
	}

	return patch, nil
}

func patchFieldNames() []string {
	names := make([]string, 0, len(patchFields))
	for name := range patchFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseUserID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one user id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", args[0])
	}
	return id, nil
}
