package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/query"
)

// In-memory store fakes. The tip fake filters with Predicate.Eval and
// orders rows the way the real store does, so service tests exercise
// the full search pipeline without a database.

type fakeTipStore struct {
	tips   []model.Tip
	nextID uint
}

func newFakeTipStore(tips ...model.Tip) *fakeTipStore {
	f := &fakeTipStore{tips: tips}
	for _, t := range tips {
		if t.ID >= f.nextID {
			f.nextID = t.ID
		}
	}
	f.nextID++
	return f
}

func (f *fakeTipStore) matching(pred query.Predicate) []model.Tip {
	var out []model.Tip
	for _, t := range f.tips {
		if pred.Eval(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeTipStore) Count(_ context.Context, pred query.Predicate) (int64, error) {
	return int64(len(f.matching(pred))), nil
}

func (f *fakeTipStore) FindPage(_ context.Context, pred query.Predicate, offset, limit int) ([]model.Tip, error) {
	rows := f.matching(pred)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (f *fakeTipStore) Get(_ context.Context, id uint) (*model.Tip, error) {
	for i := range f.tips {
		if f.tips[i].ID == id {
			t := f.tips[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeTipStore) Create(_ context.Context, tip *model.Tip) error {
	tip.ID = f.nextID
	f.nextID++
	tip.CreatedAt = time.Now()
	f.tips = append(f.tips, *tip)
	return nil
}

func (f *fakeTipStore) Delete(_ context.Context, id uint) error {
	for i := range f.tips {
		if f.tips[i].ID == id {
			f.tips = append(f.tips[:i], f.tips[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeTipStore) CountByCategory(_ context.Context) (map[model.Category]int64, error) {
	stats := map[model.Category]int64{}
	for _, t := range f.tips {
		stats[t.Category]++
	}
	return stats, nil
}

func (f *fakeTipStore) RecentWithCreator(_ context.Context, n int) ([]RecentTip, error) {
	rows := f.matching(query.And())
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]RecentTip, 0, n)
	for _, t := range rows[:n] {
		out = append(out, RecentTip{ID: t.ID, Title: t.Title, Category: t.Category, CreatedAt: t.CreatedAt})
	}
	return out, nil
}

type fakeUserStore struct {
	users   map[uint]*model.User
	nextID  uint
	deleted []uint
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	f := &fakeUserStore{users: map[uint]*model.User{}, nextID: 1}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUserStore) Get(_ context.Context, id uint) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	// Mirrors the unique index on email.
	if user.Email != nil {
		for _, u := range f.users {
			if u.Email != nil && *u.Email == *user.Email {
				return fmt.Errorf("duplicate email %s", *user.Email)
			}
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Save(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserStore) CountAdmins(_ context.Context) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.IsAdmin() {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserStore) Recent(_ context.Context, n int) ([]model.User, error) {
	ids := make([]uint, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if n > len(ids) {
		n = len(ids)
	}
	out := make([]model.User, 0, n)
	for _, id := range ids[:n] {
		out = append(out, *f.users[id])
	}
	return out, nil
}

func (f *fakeUserStore) ListWithCounts(_ context.Context) ([]UserWithCounts, error) {
	users, _ := f.Recent(context.Background(), len(f.users))
	out := make([]UserWithCounts, 0, len(users))
	for _, u := range users {
		out = append(out, UserWithCounts{User: u})
	}
	return out, nil
}

func (f *fakeUserStore) DeleteCascade(_ context.Context, id uint) error {
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type favKey struct{ userID, tipID uint }

type fakeFavoriteStore struct {
	favorites map[favKey]bool
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{favorites: map[favKey]bool{}}
}

func (f *fakeFavoriteStore) add(userID, tipID uint) {
	f.favorites[favKey{userID, tipID}] = true
}

func (f *fakeFavoriteStore) TipIDsForUser(_ context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for k := range f.favorites {
		if k.userID == userID {
			ids = append(ids, k.tipID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeFavoriteStore) Toggle(_ context.Context, userID, tipID uint) (bool, error) {
	k := favKey{userID, tipID}
	if f.favorites[k] {
		delete(f.favorites, k)
		return false, nil
	}
	f.favorites[k] = true
	return true, nil
}

func (f *fakeFavoriteStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.favorites)), nil
}

type tokenKey struct{ identifier, token string }

type fakeTokenStore struct {
	tokens map[tokenKey]time.Time
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[tokenKey]time.Time{}}
}

func (f *fakeTokenStore) Upsert(_ context.Context, identifier, token string, expires time.Time) error {
	for k := range f.tokens {
		if k.identifier == identifier {
			delete(f.tokens, k)
		}
	}
	f.tokens[tokenKey{identifier, token}] = expires
	return nil
}

func (f *fakeTokenStore) Get(_ context.Context, identifier, token string) (*model.VerificationToken, error) {
	expires, ok := f.tokens[tokenKey{identifier, token}]
	if !ok {
		return nil, nil
	}
	return &model.VerificationToken{Identifier: identifier, Token: token, Expires: expires}, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, identifier, token string) error {
	delete(f.tokens, tokenKey{identifier, token})
	return nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) SendEmail(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

type fakeSigner struct{}

func (fakeSigner) GenerateToken(email string, userID uint, role string) (string, error) {
	return fmt.Sprintf("signed:%s:%d:%s", email, userID, role), nil
}
