package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// memStorage in-memory реализация storage.Storage для тестов сервисов.
// Уникальность email/phone и каскадное удаление повторяют поведение БД.
type memStorage struct {
	failWith  error
	users     map[int64]*models.User
	userTags  map[int64][]string
	subs      map[[2]int64]struct{}
	reviews   []models.WorkReview
	vacancies map[int64]*models.Vacancy
	mu        sync.Mutex
	nextID    int64
}

var _ storage.Storage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{
		users:     make(map[int64]*models.User),
		userTags:  make(map[int64][]string),
		subs:      make(map[[2]int64]struct{}),
		vacancies: make(map[int64]*models.Vacancy),
	}
}

func (m *memStorage) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStorage) checkUnique(u *models.User) error {
	for _, other := range m.users {
		if other.ID == u.ID {
			continue
		}
		if u.Email != "" && other.Email == u.Email {
			return storage.ErrEmailTaken
		}
		if u.Phone != "" && other.Phone == u.Phone {
			return storage.ErrPhoneTaken
		}
	}
	return nil
}

func (m *memStorage) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if err := m.checkUnique(user); err != nil {
		return err
	}
	user.ID = m.id()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStorage) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if u := m.users[id]; match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *memStorage) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == id })
}

func (m *memStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return email != "" && u.Email == email })
}

func (m *memStorage) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return phone != "" && u.Phone == phone })
}

func (m *memStorage) GetUserByName(_ context.Context, name, surname string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Name == name && u.Surname == surname })
}

func (m *memStorage) PatchUser(_ context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	current, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	updated := models.ApplyPatch(*current, patch)
	if err := m.checkUnique(&updated); err != nil {
		return nil, err
	}
	m.users[id] = &updated
	cp := updated
	return &cp, nil
}

func (m *memStorage) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(m.users, id)
	delete(m.userTags, id)
	for key := range m.subs {
		if key[0] == id || key[1] == id {
			delete(m.subs, key)
		}
	}
	kept := m.reviews[:0]
	for _, r := range m.reviews {
		if r.UserID != id {
			kept = append(kept, r)
		}
	}
	m.reviews = kept
	for vid, v := range m.vacancies {
		if v.VacancyHolderID == id {
			delete(m.vacancies, vid)
		}
	}
	return nil
}

func (m *memStorage) SetUserTags(_ context.Context, userID int64, names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return storage.ErrUserNotFound
	}
	m.userTags[userID] = append([]string(nil), names...)
	return nil
}

func (m *memStorage) GetUserTags(_ context.Context, userID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tags := append([]string{}, m.userTags[userID]...)
	sort.Strings(tags)
	return tags, nil
}

func (m *memStorage) SearchUsersByTags(_ context.Context, names []string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	out := make([]models.User, 0)
	for id, tags := range m.userTags {
		for _, t := range tags {
			if _, ok := want[t]; ok {
				out = append(out, *m.users[id])
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStorage) CreateReview(_ context.Context, review *models.WorkReview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[review.UserID]; !ok {
		return storage.ErrUserNotFound
	}
	review.ID = m.id()
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *memStorage) GetUserReviews(_ context.Context, userID int64) ([]models.WorkReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.WorkReview, 0)
	for _, r := range m.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStorage) Subscribe(_ context.Context, from, to int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[to]; !ok {
		return storage.ErrUserNotFound
	}
	m.subs[[2]int64{from, to}] = struct{}{}
	return nil
}

func (m *memStorage) Unsubscribe(_ context.Context, from, to int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs, [2]int64{from, to})
	return nil
}

func (m *memStorage) collect(match func(key [2]int64) (int64, bool)) []models.User {
	out := make([]models.User, 0)
	for key := range m.subs {
		if id, ok := match(key); ok {
			out = append(out, *m.users[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStorage) GetFollowers(_ context.Context, userID int64) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collect(func(key [2]int64) (int64, bool) { return key[0], key[1] == userID }), nil
}

func (m *memStorage) GetFollowing(_ context.Context, userID int64) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collect(func(key [2]int64) (int64, bool) { return key[1], key[0] == userID }), nil
}

func (m *memStorage) CreateVacancy(_ context.Context, v *models.Vacancy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[v.VacancyHolderID]; !ok {
		return storage.ErrUserNotFound
	}
	v.ID = m.id()
	cp := *v
	m.vacancies[v.ID] = &cp
	return nil
}

func (m *memStorage) GetVacancy(_ context.Context, id int64) (*models.Vacancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vacancies[id]
	if !ok {
		return nil, storage.ErrVacancyNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memStorage) GetHolderVacancies(_ context.Context, holderID int64) ([]models.Vacancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Vacancy, 0)
	for _, v := range m.vacancies {
		if v.VacancyHolderID == holderID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStorage) DeleteVacancy(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vacancies[id]; !ok {
		return storage.ErrVacancyNotFound
	}
	delete(m.vacancies, id)
	return nil
}

func (m *memStorage) Close() error { return nil }

// countingCache SearchCache в памяти со счетчиками вызовов
type countingCache struct {
	err         error
	entries     map[string][]models.User
	gets        int
	sets        int
	invalidates int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[string][]models.User)}
}

func (c *countingCache) key(tags []string) string {
	k := ""
	for _, t := range tags {
		k += t + ","
	}
	return k
}

func (c *countingCache) GetUsers(_ context.Context, tags []string) ([]models.User, bool, error) {
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	users, ok := c.entries[c.key(tags)]
	return users, ok, nil
}

func (c *countingCache) SetUsers(_ context.Context, tags []string, users []models.User) error {
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.entries[c.key(tags)] = users
	return nil
}

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidates++
	if c.err != nil {
		return c.err
	}
	c.entries = make(map[string][]models.User)
	return nil
}
