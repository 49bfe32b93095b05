package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/sakif/wordecho/internal/apperror"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/repository"
)

// =========================================================================
// FAKES
// =========================================================================

// fakeBlogRepo is an in-memory implementation of repository.BlogRepository.
// It mirrors the SQLite implementation's semantics, including the
// id+user_id ownership predicate on Update and Delete.
type fakeBlogRepo struct {
	blogs  map[string]*model.Blog
	nextID int
	// set to a non-nil error to simulate a database failure
	listErr error
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*model.Blog), nextID: 1}
}

func (f *fakeBlogRepo) Create(ctx context.Context, blog *model.Blog) error {
	blog.ID = fmt.Sprintf("blog-fake-id-%02d", f.nextID)
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
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]string, 0, len(f.blogs))
	for id := range f.blogs {
		ids = append(ids, id)
	}
	sort.Strings(ids) // fake IDs sort by creation order

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

func newTestBlogService(repo *fakeBlogRepo) *BlogService {
	return NewBlogService(repo, testLogger())
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestBlogServiceCreate_Success(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	blog, err := svc.Create(context.Background(), "My Post", "Some content.", "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if blog.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if blog.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", blog.UserID, "user-1")
	}
}

func TestBlogServiceCreate_Validation(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	cases := []struct {
		name    string
		title   string
		content string
		userID  string
	}{
		{"empty title", "", "content", "user-1"},
		{"whitespace title", "   ", "content", "user-1"},
		{"title too long", strings.Repeat("x", MaxTitleLength+1), "content", "user-1"},
		{"content too long", "Title", strings.Repeat("x", MaxContentLength+1), "user-1"},
		{"missing owner", "Title", "content", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.title, tc.content, tc.userID)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestBlogServiceList_ClampsLimit(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	for i := 0; i < 12; i++ {
		if _, err := svc.Create(context.Background(), fmt.Sprintf("post %02d", i), "c", "u"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	// limit=0 falls back to the default page size (10)
	blogs, err := svc.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(blogs) != DefaultBlogListLimit {
		t.Errorf("List() len = %d, want %d", len(blogs), DefaultBlogListLimit)
	}
	if blogs[0].Title != "post 00" {
		t.Errorf("first record = %q, want the oldest post", blogs[0].Title)
	}
}

func TestBlogServiceList_SkipMovesTheWindow(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), fmt.Sprintf("post %02d", i), "c", "u"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	blogs, err := svc.List(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(blogs) != 2 {
		t.Fatalf("List() len = %d, want 2", len(blogs))
	}
	if blogs[0].Title != "post 03" {
		t.Errorf("first record after skip=3 = %q, want %q", blogs[0].Title, "post 03")
	}
}

func TestBlogServiceList_NegativeSkipTreatedAsZero(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	if _, err := svc.Create(context.Background(), "only", "c", "u"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	blogs, err := svc.List(context.Background(), -7, -1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(blogs) != 1 {
		t.Errorf("List() len = %d, want 1", len(blogs))
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestBlogServiceUpdate_ByOwner(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	created, err := svc.Create(context.Background(), "Before", "old", "owner-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, "After", "new", "owner-1")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("Title = %q, want %q", updated.Title, "After")
	}
	if updated.Content != "new" {
		t.Errorf("Content = %q, want %q", updated.Content, "new")
	}
}

func TestBlogServiceUpdate_NonOwnerGetsNotFound(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	created, err := svc.Create(context.Background(), "Mine", "c", "owner-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Not 403: the caller can't distinguish "not yours" from "doesn't exist"
	_, err = svc.Update(context.Background(), created.ID, "Stolen", "c", "intruder")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update() by non-owner error = %v, want ErrNotFound", err)
	}
}

func TestBlogServiceUpdate_UnknownID(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	_, err := svc.Update(context.Background(), "ghost", "Title", "c", "user-1")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestBlogServiceDelete_ByOwner(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	created, err := svc.Create(context.Background(), "Doomed", "c", "owner-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID, "owner-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = svc.GetByID(context.Background(), created.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestBlogServiceDelete_NonOwnerGetsNotFound(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestBlogService(repo)

	created, err := svc.Create(context.Background(), "Safe", "c", "owner-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = svc.Delete(context.Background(), created.ID, "intruder")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete() by non-owner error = %v, want ErrNotFound", err)
	}

	// Post survives
	if _, err := svc.GetByID(context.Background(), created.ID); err != nil {
		t.Errorf("post should survive a non-owner delete, got: %v", err)
	}
}
