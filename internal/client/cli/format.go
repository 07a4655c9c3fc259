package cli

import (
	"strings"

	pkgapi "github.com/iudanet/pautinka/pkg/api"
)

// printUser выводит заполненные поля профиля
func (c *Cli) printUser(u *pkgapi.User) {
	c.io.Printf("ID: %d\n", u.ID)
	c.io.Printf("Name: %s\n", strings.Join(strings.Fields(u.Name+" "+u.LastName+" "+u.Surname), " "))

	fields := []struct {
		label string
		value string
	}{
		{"Email", u.Email},
		{"Phone", u.Phone},
		{"University", u.University},
		{"Course", u.Course},
		{"Birthdate", u.Birthdate},
		{"Status", u.ShortStatus},
		{"About", u.FullStatus},
		{"About me", u.AboutMe},
		{"Links", u.Links},
	}
	for _, f := range fields {
		if f.value != "" {
			c.io.Printf("%s: %s\n", f.label, f.value)
		}
	}
}

// printUserLine выводит пользователя одной строкой для списков
func (c *Cli) printUserLine(u pkgapi.User) {
	line := u.Name + " " + u.Surname
	if u.ShortStatus != "" {
		line += " (" + u.ShortStatus + ")"
	}
	c.io.Printf("  [%d] %s\n", u.ID, line)
}

func (c *Cli) printReview(r pkgapi.WorkReview) {
	period := r.DateStart + " - "
	if r.DateEnd != "" {
		period += r.DateEnd
	} else {
		period += "now"
	}

	company := r.CompanyName
	if r.SubcompanyName != "" {
		company += " / " + r.SubcompanyName
	}

	c.io.Printf("  %s: %s at %s\n", period, r.Post, company)
}

// splitTags разбирает "a, b,c" в список без пустых элементов
func splitTags(arg string) []string {
	var tags []string
	for _, tag := range strings.Split(arg, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
