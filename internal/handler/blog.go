package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/wordecho/internal/auth"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/service"
)

// BlogHandler manages blog posts and the comments attached to them.
type BlogHandler struct {
	blogs    *service.BlogService
	comments *service.CommentService
	logger   *slog.Logger
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blogs *service.BlogService, comments *service.CommentService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, comments: comments, logger: logger}
}

// blogRequest is the JSON body for creating or updating a blog post.
type blogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// commentRequest is the JSON body for posting a comment.
type commentRequest struct {
	Content string `json:"content"`
}

// HandleList returns a page of blog posts.
//
// HTTP: GET /api/blogs/?skip=0&limit=10
//
// skip and limit are optional; malformed values fall back to the
// defaults rather than erroring, matching how most list endpoints treat
// junk pagination input.
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip := intQueryParam(r, "skip", 0)
	limit := intQueryParam(r, "limit", service.DefaultBlogListLimit)

	blogs, err := h.blogs.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}
	writeJSON(w, http.StatusOK, blogs)
}

// HandleGet returns a single blog post.
//
// HTTP: GET /api/blogs/{id}
func (h *BlogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// HandleCreate publishes a new blog post owned by the authenticated user.
//
// HTTP: POST /api/blogs/
// Auth: Required
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Create(r.Context(), req.Title, req.Content, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleUpdate replaces a blog post's title and content.
//
// HTTP: PUT /api/blogs/{id}?user_id=<owner>
//
// The acting user comes from the user_id query parameter when present,
// otherwise from the bearer token (the route runs under OptionalAuth).
// Neither present is a 400. An id that doesn't exist, or exists but is
// owned by someone else, answers 404 — the two cases are deliberately
// indistinguishable.
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		if tokenUser, ok := auth.UserIDFromContext(r.Context()); ok {
			userID = tokenUser
		}
	}
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "user_id is required",
		})
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Update(r.Context(), id, req.Title, req.Content, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleDelete removes a blog post owned by the authenticated user.
//
// HTTP: DELETE /api/blogs/{id}
// Auth: Required
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	if err := h.blogs.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleListComments returns all comments on a blog post, oldest first.
//
// HTTP: GET /api/blogs/{id}/comments
//
// 404 when the blog itself doesn't exist; an empty array when it exists
// but has no comments.
func (h *BlogHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListForBlog(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// HandleCreateComment posts a comment on a blog post as the
// authenticated user.
//
// HTTP: POST /api/blogs/{id}/comments
// Auth: Required
func (h *BlogHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid comment JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	comment, err := h.comments.Create(r.Context(), r.PathValue("id"), userID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// HandleGetComment returns a single comment by its own ID.
//
// HTTP: GET /api/comments/{id}
func (h *BlogHandler) HandleGetComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.comments.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// intQueryParam reads an integer query parameter, falling back to def
// when the parameter is absent or not a number.
func intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
