// Package cli команды консольного клиента Pautinka
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/pautinka/internal/client/iocli"
	"github.com/iudanet/pautinka/internal/client/storage"
	pkgapi "github.com/iudanet/pautinka/pkg/api"
)

// PasswordEnv переменная окружения с паролем для неинтерактивного входа
const PasswordEnv = "PAUTINKA_PASSWORD"

// API запросы к серверу, которые выполняют команды
type API interface {
	Me(ctx context.Context, token string) (*pkgapi.User, error)
	EditMe(ctx context.Context, token string, patch pkgapi.ProfilePatch) error
	GetUser(ctx context.Context, id int64) (*pkgapi.User, error)
	UserTags(ctx context.Context, id int64) ([]string, error)
	UserReviews(ctx context.Context, id int64) ([]pkgapi.WorkReview, error)
	MyTags(ctx context.Context, token string) ([]string, error)
	SetMyTags(ctx context.Context, token string, tags []string) ([]string, error)
	CreateReview(ctx context.Context, token string, req pkgapi.WorkReviewRequest) error
	Search(ctx context.Context, tags []string) ([]pkgapi.User, error)
	Follow(ctx context.Context, token string, id int64) error
	Unfollow(ctx context.Context, token string, id int64) error
}

// Sessions вход, выход и текущая сессия
type Sessions interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*storage.Session, error)
	Login(ctx context.Context, login, password string) (*storage.Session, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*storage.Session, error)
	Token(ctx context.Context) (string, error)
}

// Passwords источники пароля кроме окружения и интерактивного ввода
type Passwords struct {
	FromFile string
	FromArgs string
}

// Cli выполняет команды клиента
type Cli struct {
	api       API
	sessions  Sessions
	io        iocli.IO
	passwords Passwords
}

// New создает Cli
func New(apiClient API, sessions Sessions, io iocli.IO, passwords Passwords) *Cli {
	return &Cli{
		api:       apiClient,
		sessions:  sessions,
		io:        io,
		passwords: passwords,
	}
}

// passwordFromSources retrieves password from non-interactive sources with priority:
// 1. Environment variable PAUTINKA_PASSWORD
// 2. File specified in Passwords.FromFile
// 3. Command-line parameter Passwords.FromArgs
// ok is false when none of them is set.
func (c *Cli) passwordFromSources() (password string, ok bool, err error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, true, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", false, fmt.Errorf("password file is empty")
		}
		return password, true, nil
	}

	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, true, nil
	}

	return "", false, nil
}

// getPassword берет пароль из источников, иначе спрашивает интерактивно
func (c *Cli) getPassword(prompt string) (string, error) {
	password, ok, err := c.passwordFromSources()
	if err != nil || ok {
		return password, err
	}
	return c.promptPassword(prompt)
}

// getNewPassword как getPassword, но интерактивный ввод требует подтверждения
func (c *Cli) getNewPassword() (string, error) {
	password, ok, err := c.passwordFromSources()
	if err != nil || ok {
		return password, err
	}

	password, err = c.promptPassword("Password: ")
	if err != nil {
		return "", err
	}
	confirm, err := c.promptPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return password, nil
}

func (c *Cli) promptPassword(prompt string) (string, error) {
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// PrintUsage печатает справку
func PrintUsage(io iocli.IO) {
	io.Println("Pautinka Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  pautinka [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version              Show version information")
	io.Println("  --server URL           Server URL (default: http://localhost:8000)")
	io.Println("  --db PATH              Path to local session database (default: pautinka-client.db)")
	io.Println("  --password PASSWORD    Password (not recommended, use env var or file)")
	io.Println("  --password-file PATH   Path to file containing password")
	io.Println()
	io.Println("Password Priority (highest to lowest):")
	io.Println("  1. PAUTINKA_PASSWORD environment variable")
	io.Println("  2. --password-file (file path)")
	io.Println("  3. --password (command line)")
	io.Println("  4. Interactive prompt (fallback)")
	io.Println()
	io.Println("Commands:")
	io.Println("  register               Register new user")
	io.Println("  login                  Login with email or phone")
	io.Println("  logout                 Delete local session")
	io.Println("  status                 Show session status")
	io.Println("  me                     Show your profile")
	io.Println("  show <id>              Show user profile, tags and work history")
	io.Println("  edit field=value...    Edit your profile (empty value clears a field)")
	io.Println("  tags [a,b,...]         Show or replace your tags")
	io.Println("  review                 Add a work history entry")
	io.Println("  search <a,b,...>       Find users having any of the tags")
	io.Println("  follow <id>            Subscribe to user")
	io.Println("  unfollow <id>          Unsubscribe from user")
	io.Println()
	io.Println("Examples:")
	io.Println("  pautinka register")
	io.Println("  pautinka login")
	io.Println("  pautinka edit about_me='Go developer' university=MSU")
	io.Println("  pautinka tags go,postgres")
	io.Println("  pautinka search go,rust")
	io.Println("  pautinka --server https://pautinka.space show 42")
}
