package handler_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"

	"github.com/sakif/wordecho/internal/apperror"
	"github.com/sakif/wordecho/internal/auth"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/repository"
	"github.com/sakif/wordecho/internal/service"
)

// Shared in-memory fakes for handler tests. Handlers are exercised through
// real services wired over these fakes, so each test covers the full
// request path below the router: decode → service rules → error mapping.

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return apperror.Conflict("user", user.Email)
		}
	}
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	if user.OAuthProvider == "" {
		user.OAuthProvider = model.ProviderLocal
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	existing, ok := f.users[user.ID]
	if !ok {
		return apperror.NotFound("user", user.ID)
	}
	existing.Name = user.Name
	existing.Email = user.Email
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(f.users, id)
	return nil
}

type fakeBlogRepo struct {
	blogs  map[string]*model.Blog
	nextID int
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*model.Blog), nextID: 1}
}

func (f *fakeBlogRepo) Create(ctx context.Context, blog *model.Blog) error {
	blog.ID = fmt.Sprintf("blog-%02d", f.nextID)
	f.nextID++
	copied := *blog
	f.blogs[blog.ID] = &copied
	return nil
}

func (f *fakeBlogRepo) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBlogRepo) List(ctx context.Context, opts repository.ListOptions) ([]model.Blog, error) {
	ids := make([]string, 0, len(f.blogs))
	for id := range f.blogs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []model.Blog
	for i, id := range ids {
		if i < opts.Offset {
			continue
		}
		if len(out) >= opts.Limit {
			break
		}
		out = append(out, *f.blogs[id])
	}
	return out, nil
}

func (f *fakeBlogRepo) Update(ctx context.Context, blog *model.Blog) error {
	existing, ok := f.blogs[blog.ID]
	if !ok || existing.UserID != blog.UserID {
		return apperror.NotFound("blog", blog.ID)
	}
	existing.Title = blog.Title
	existing.Content = blog.Content
	return nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, id, userID string) error {
	existing, ok := f.blogs[id]
	if !ok || existing.UserID != userID {
		return apperror.NotFound("blog", id)
	}
	delete(f.blogs, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[string]*model.Comment
	nextID   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*model.Comment), nextID: 1}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	comment.ID = fmt.Sprintf("comment-%02d", f.nextID)
	f.nextID++
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment", id)
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) ListForBlog(ctx context.Context, blogID string) ([]model.Comment, error) {
	out := []model.Comment{}
	for _, c := range f.comments {
		if c.BlogID == blogID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeContactRepo struct {
	messages []*model.ContactMessage
	err      error
}

func (f *fakeContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	msg.ID = "contact-1"
	copied := *msg
	f.messages = append(f.messages, &copied)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testPasswords() *auth.PasswordService {
	return auth.NewPasswordServiceForTest(4)
}

func testTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 0)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func newUserService(repo *fakeUserRepo) *service.UserService {
	return service.NewUserService(repo, testPasswords(), testLogger())
}
