package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pautinka/internal/client/auth"
	"github.com/iudanet/pautinka/internal/client/iocli"
	"github.com/iudanet/pautinka/internal/client/storage"
	pkgapi "github.com/iudanet/pautinka/pkg/api"
)

type fakeAPI struct {
	users      map[int64]*pkgapi.User
	tags       map[int64][]string
	reviews    map[int64][]pkgapi.WorkReview
	patch      *pkgapi.ProfilePatch
	review     *pkgapi.WorkReviewRequest
	searched   []string
	myTags     []string
	followed   []int64
	unfollowed []int64
	token      string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users: map[int64]*pkgapi.User{
			1: {ID: 1, Name: "Ivan", Surname: "Petrov", Email: "ivan@example.com"},
			2: {ID: 2, Name: "Anna", Surname: "Sidorova", ShortStatus: "gopher"},
		},
		tags: map[int64][]string{2: {"go", "sql"}},
		reviews: map[int64][]pkgapi.WorkReview{
			2: {{ID: 1, UserID: 2, Post: "Developer", CompanyName: "Acme", DateStart: "2020-01-01"}},
		},
		myTags: []string{"go"},
	}
}

func (f *fakeAPI) authorize(token string) error {
	f.token = token
	if token != "valid-token" {
		return errors.New("unauthorized")
	}
	return nil
}

func (f *fakeAPI) Me(_ context.Context, token string) (*pkgapi.User, error) {
	if err := f.authorize(token); err != nil {
		return nil, err
	}
	return f.users[1], nil
}

func (f *fakeAPI) EditMe(_ context.Context, token string, patch pkgapi.ProfilePatch) error {
	if err := f.authorize(token); err != nil {
		return err
	}
	f.patch = &patch
	return nil
}

func (f *fakeAPI) GetUser(_ context.Context, id int64) (*pkgapi.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d not found", id)
	}
	return u, nil
}

func (f *fakeAPI) UserTags(_ context.Context, id int64) ([]string, error) {
	return f.tags[id], nil
}

func (f *fakeAPI) UserReviews(_ context.Context, id int64) ([]pkgapi.WorkReview, error) {
	return f.reviews[id], nil
}

func (f *fakeAPI) MyTags(_ context.Context, token string) ([]string, error) {
	if err := f.authorize(token); err != nil {
		return nil, err
	}
	return f.myTags, nil
}

func (f *fakeAPI) SetMyTags(_ context.Context, token string, tags []string) ([]string, error) {
	if err := f.authorize(token); err != nil {
		return nil, err
	}
	f.myTags = tags
	return tags, nil
}

func (f *fakeAPI) CreateReview(_ context.Context, token string, req pkgapi.WorkReviewRequest) error {
	if err := f.authorize(token); err != nil {
		return err
	}
	f.review = &req
	return nil
}

func (f *fakeAPI) Search(_ context.Context, tags []string) ([]pkgapi.User, error) {
	f.searched = tags
	return []pkgapi.User{*f.users[2]}, nil
}

func (f *fakeAPI) Follow(_ context.Context, token string, id int64) error {
	if err := f.authorize(token); err != nil {
		return err
	}
	f.followed = append(f.followed, id)
	return nil
}

func (f *fakeAPI) Unfollow(_ context.Context, token string, id int64) error {
	if err := f.authorize(token); err != nil {
		return err
	}
	f.unfollowed = append(f.unfollowed, id)
	return nil
}

type fakeSessions struct {
	session    *storage.Session
	registered *pkgapi.RegisterRequest
	login      string
	password   string
}

func (f *fakeSessions) Register(_ context.Context, req pkgapi.RegisterRequest) (*storage.Session, error) {
	f.registered = &req
	f.session = &storage.Session{UserID: 1, Login: req.Email, AccessToken: "valid-token", ExpiresAt: time.Now().Add(time.Hour)}
	return f.session, nil
}

func (f *fakeSessions) Login(_ context.Context, login, password string) (*storage.Session, error) {
	f.login = login
	f.password = password
	f.session = &storage.Session{UserID: 1, Login: login, AccessToken: "valid-token", ExpiresAt: time.Now().Add(time.Hour)}
	return f.session, nil
}

func (f *fakeSessions) Logout(context.Context) error {
	f.session = nil
	return nil
}

func (f *fakeSessions) Session(context.Context) (*storage.Session, error) {
	if f.session == nil {
		return nil, auth.ErrNotLoggedIn
	}
	return f.session, nil
}

func (f *fakeSessions) Token(ctx context.Context) (string, error) {
	s, err := f.Session(ctx)
	if err != nil {
		return "", err
	}
	return s.AccessToken, nil
}

type testCli struct {
	cli      *Cli
	api      *fakeAPI
	sessions *fakeSessions
	io       *iocli.IOMock
	out      *bytes.Buffer
}

// newTestCli создает Cli с заготовленными ответами на ввод
func newTestCli(t *testing.T, inputs, passwords []string, pw Passwords) *testCli {
	t.Helper()
	t.Setenv(PasswordEnv, "")

	out := &bytes.Buffer{}
	io := &iocli.IOMock{
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(out, format, a...)
		},
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(out, a...)
		},
		WriteFunc: out.Write,
		ReadInputFunc: func(string) (string, error) {
			if len(inputs) == 0 {
				return "", errors.New("no more input")
			}
			v := inputs[0]
			inputs = inputs[1:]
			return v, nil
		},
		ReadPasswordFunc: func(string) (string, error) {
			if len(passwords) == 0 {
				return "", errors.New("no more passwords")
			}
			v := passwords[0]
			passwords = passwords[1:]
			return v, nil
		},
	}

	api := newFakeAPI()
	sessions := &fakeSessions{}
	return &testCli{
		cli:      New(api, sessions, io, pw),
		api:      api,
		sessions: sessions,
		io:       io,
		out:      out,
	}
}

func (tc *testCli) loggedIn() *testCli {
	tc.sessions.session = &storage.Session{UserID: 1, Login: "ivan@example.com", AccessToken: "valid-token", ExpiresAt: time.Now().Add(time.Hour)}
	return tc
}

func TestCli_PasswordPriority(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "password")
	require.NoError(t, os.WriteFile(file, []byte("from-file\n"), 0o600))
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))

	tests := []struct {
		name      string
		env       string
		pw        Passwords
		prompts   []string
		want      string
		wantErr   bool
		wantAsked int
	}{
		{name: "env wins", env: "from-env", pw: Passwords{FromFile: file, FromArgs: "from-args"}, want: "from-env"},
		{name: "file before args", pw: Passwords{FromFile: file, FromArgs: "from-args"}, want: "from-file"},
		{name: "args", pw: Passwords{FromArgs: "from-args"}, want: "from-args"},
		{name: "prompt", prompts: []string{"typed"}, want: "typed", wantAsked: 1},
		{name: "empty prompt", prompts: []string{""}, wantErr: true, wantAsked: 1},
		{name: "missing file", pw: Passwords{FromFile: filepath.Join(dir, "nope")}, wantErr: true},
		{name: "empty file", pw: Passwords{FromFile: empty}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCli(t, nil, tt.prompts, tt.pw)
			t.Setenv(PasswordEnv, tt.env)

			got, err := tc.cli.getPassword("Password: ")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Len(t, tc.io.ReadPasswordCalls(), tt.wantAsked)
		})
	}
}

func TestCli_NewPasswordConfirmation(t *testing.T) {
	tc := newTestCli(t, nil, []string{"secret", "secret"}, Passwords{})
	got, err := tc.cli.getNewPassword()
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	tc = newTestCli(t, nil, []string{"secret", "other"}, Passwords{})
	_, err = tc.cli.getNewPassword()
	assert.ErrorContains(t, err, "do not match")

	// Неинтерактивный источник не требует подтверждения
	tc = newTestCli(t, nil, nil, Passwords{FromArgs: "args"})
	got, err = tc.cli.getNewPassword()
	require.NoError(t, err)
	assert.Equal(t, "args", got)
	assert.Empty(t, tc.io.ReadPasswordCalls())
}

func TestCli_Register(t *testing.T) {
	tc := newTestCli(t, []string{"Ivan", "Petrov", "ivan@example.com", ""}, []string{"pw", "pw"}, Passwords{})

	require.NoError(t, tc.cli.Run(t.Context(), "register", nil))

	require.NotNil(t, tc.sessions.registered)
	assert.Equal(t, pkgapi.RegisterRequest{
		Name:     "Ivan",
		Surname:  "Petrov",
		Email:    "ivan@example.com",
		Password: "pw",
	}, *tc.sessions.registered)
	assert.Contains(t, tc.out.String(), "Registration successful")
	assert.Contains(t, tc.out.String(), "User ID: 1")
}

func TestCli_Login(t *testing.T) {
	tc := newTestCli(t, []string{"+79990001122"}, []string{"pw"}, Passwords{})

	require.NoError(t, tc.cli.Run(t.Context(), "login", nil))

	assert.Equal(t, "+79990001122", tc.sessions.login)
	assert.Equal(t, "pw", tc.sessions.password)
	assert.Contains(t, tc.out.String(), "Login successful")
}

func TestCli_StatusAndLogout(t *testing.T) {
	tc := newTestCli(t, nil, nil, Passwords{})

	require.NoError(t, tc.cli.Run(t.Context(), "status", nil))
	assert.Contains(t, tc.out.String(), "Not authenticated")

	tc.loggedIn()
	tc.out.Reset()
	require.NoError(t, tc.cli.Run(t.Context(), "status", nil))
	assert.Contains(t, tc.out.String(), "Status: Authenticated")
	assert.Contains(t, tc.out.String(), "Login: ivan@example.com")

	require.NoError(t, tc.cli.Run(t.Context(), "logout", nil))
	assert.Nil(t, tc.sessions.session)
	assert.Contains(t, tc.out.String(), "Logged out ivan@example.com")

	tc.out.Reset()
	require.NoError(t, tc.cli.Run(t.Context(), "logout", nil))
	assert.Contains(t, tc.out.String(), "Not logged in")
}

func TestCli_NotLoggedIn(t *testing.T) {
	commands := []struct {
		name string
		args []string
	}{
		{name: "me"},
		{name: "edit", args: []string{"name=Ivan"}},
		{name: "tags"},
		{name: "review"},
		{name: "follow", args: []string{"2"}},
		{name: "unfollow", args: []string{"2"}},
	}

	for _, cmd := range commands {
		t.Run(cmd.name, func(t *testing.T) {
			tc := newTestCli(t, nil, nil, Passwords{})
			err := tc.cli.Run(t.Context(), cmd.name, cmd.args)
			assert.ErrorIs(t, err, auth.ErrNotLoggedIn)
		})
	}
}

func TestCli_MeAndShow(t *testing.T) {
	tc := newTestCli(t, nil, nil, Passwords{}).loggedIn()

	require.NoError(t, tc.cli.Run(t.Context(), "me", nil))
	assert.Equal(t, "valid-token", tc.api.token)
	assert.Contains(t, tc.out.String(), "Name: Ivan Petrov")
	assert.Contains(t, tc.out.String(), "Email: ivan@example.com")
	assert.NotContains(t, tc.out.String(), "Phone:")

	tc.out.Reset()
	require.NoError(t, tc.cli.Run(t.Context(), "show", []string{"2"}))
	out := tc.out.String()
	assert.Contains(t, out, "Status: gopher")
	assert.Contains(t, out, "Tags: go, sql")
	assert.Contains(t, out, "2020-01-01 - now: Developer at Acme")

	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"1", "2"}} {
		assert.Error(t, tc.cli.Run(t.Context(), "show", args), "args=%v", args)
	}
}

func TestParsePatch(t *testing.T) {
	patch, err := parsePatch([]string{"about_me=Go developer", "Links=", "university=MSU=main"})
	require.NoError(t, err)
	require.NotNil(t, patch.AboutMe)
	assert.Equal(t, "Go developer", *patch.AboutMe)
	require.NotNil(t, patch.Links)
	assert.Equal(t, "", *patch.Links)
	require.NotNil(t, patch.University)
	assert.Equal(t, "MSU=main", *patch.University)
	assert.Nil(t, patch.Name)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no args"},
		{name: "no equals", args: []string{"name"}},
		{name: "unknown field", args: []string{"password=x"}},
		{name: "duplicate", args: []string{"name=a", "name=b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePatch(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestCli_Edit(t *testing.T) {
	tc := newTestCli(t, nil, nil, Passwords{}).loggedIn()

	require.NoError(t, tc.cli.Run(t.Context(), "edit", []string{"short_status=hiring"}))
	require.NotNil(t, tc.api.patch)
	require.NotNil(t, tc.api.patch.ShortStatus)
	assert.Equal(t, "hiring", *tc.api.patch.ShortStatus)
	assert.Contains(t, tc.out.String(), "Profile updated")

	// Ошибка разбора не доходит до сервера
	tc.api.patch = nil
	require.Error(t, tc.cli.Run(t.Context(), "edit", []string{"bogus=1"}))
	assert.Nil(t, tc.api.patch)
}

func TestCli_Tags(t *testing.T) {
	tc := newTestCli(t, nil, nil, Passwords{}).loggedIn()

	require.NoError(t, tc.cli.Run(t.Context(), "tags", nil))
	assert.Contains(t, tc.out.String(), "Tags: go")

	tc.out.Reset()
	require.NoError(t, tc.cli.Run(t.Context(), "tags", []string{"go, rust", "sql,"}))
	assert.Equal(t, []string{"go", "rust", "sql"}, tc.api.myTags)
	assert.Contains(t, tc.out.String(), "Tags: go, rust, sql")

	tc.out.Reset()
	require.NoError(t, tc.cli.Run(t.Context(), "tags", []string{""}))
	assert.Empty(t, tc.api.myTags)
	assert.Contains(t, tc.out.String(), "No tags")
}

func TestCli_Review(t *testing.T) {
	tc := newTestCli(t, []string{"Developer", "Acme", "", "2021-02-03", ""}, nil, Passwords{}).loggedIn()

	require.NoError(t, tc.cli.Run(t.Context(), "review", nil))
	require.NotNil(t, tc.api.review)
	assert.Equal(t, pkgapi.WorkReviewRequest{
		Post:        "Developer",
		CompanyName: "Acme",
		DateStart:   "2021-02-03",
	}, *tc.api.review)
	assert.Len(t, tc.io.ReadInputCalls(), 5)
}

func TestCli_Search(t *testing.T) {
	tc := newTestCli(t, nil, nil, Passwords{})

	require.NoError(t, tc.cli.Run(t.Context(), "search", []string{"go,rust"}))
	assert.Equal(t, []string{"go", "rust"}, tc.api.searched)
	assert.Contains(t, tc.out.String(), "Found 1 user(s)")
	assert.Contains(t, tc.out.String(), "[2] Anna Sidorova (gopher)")

	assert.Error(t, tc.cli.Run(t.Context(), "search", nil))
	assert.Error(t, tc.cli.Run(t.Context(), "search", []string{" , "}))
}

func TestCli_Follow(t *testing.T) {
	tc := newTestCli(t, nil, nil, Passwords{}).loggedIn()

	require.NoError(t, tc.cli.Run(t.Context(), "follow", []string{"2"}))
	require.NoError(t, tc.cli.Run(t.Context(), "unfollow", []string{"2"}))

	assert.Equal(t, []int64{2}, tc.api.followed)
	assert.Equal(t, []int64{2}, tc.api.unfollowed)
	assert.Contains(t, tc.out.String(), "Subscribed to user 2")
	assert.Contains(t, tc.out.String(), "Unsubscribed from user 2")

	assert.Error(t, tc.cli.Run(t.Context(), "follow", []string{"x"}))
}

func TestCli_UnknownCommand(t *testing.T) {
	tc := newTestCli(t, nil, nil, Passwords{})

	err := tc.cli.Run(t.Context(), "sync", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestPrintUsage(t *testing.T) {
	tc := newTestCli(t, nil, nil, Passwords{})

	PrintUsage(tc.io)

	out := tc.out.String()
	for _, cmd := range []string{"register", "login", "logout", "status", "me", "show", "edit", "tags", "review", "search", "follow", "unfollow"} {
		assert.Contains(t, out, "  "+cmd, "command %s", cmd)
	}
}
