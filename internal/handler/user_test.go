package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/wordecho/internal/handler"
	"github.com/sakif/wordecho/internal/model"
)

func TestUserHandler_HandleCreate(t *testing.T) {
	t.Run("valid signup", func(t *testing.T) {
		repo := newFakeUserRepo()
		h := handler.NewUserHandler(newUserService(repo), testLogger())

		reqBody := `{"name":"John Doe","email":"john@example.com","password":"123456"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got map[string]any
		err := json.NewDecoder(rr.Body).Decode(&got)
		assert.NoError(t, err)
		assert.Equal(t, "John Doe", got["name"])
		assert.Equal(t, "john@example.com", got["email"])
		assert.NotEmpty(t, got["id"])
		assert.NotEmpty(t, got["created_at"])

		// The password must never appear in the response, in any form
		_, hasPassword := got["password"]
		assert.False(t, hasPassword)

		// And the stored credential must not be the plaintext
		stored, err := repo.GetByEmail(context.Background(), "john@example.com")
		assert.NoError(t, err)
		if assert.NotNil(t, stored.PasswordHash) {
			assert.NotEqual(t, "123456", *stored.PasswordHash)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		h := handler.NewUserHandler(newUserService(newFakeUserRepo()), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewBufferString(`{"name":`))
		rr := httptest.NewRecorder()

		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		h := handler.NewUserHandler(newUserService(newFakeUserRepo()), testLogger())

		reqBody := `{"name":"John","email":"john@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		h := handler.NewUserHandler(newUserService(repo), testLogger())

		reqBody := `{"name":"John","email":"dup@example.com","password":"pw"}`
		first := httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewBufferString(reqBody))
		h.HandleCreate(httptest.NewRecorder(), first)

		second := httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()
		h.HandleCreate(rr, second)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestUserHandler_HandleList(t *testing.T) {
	repo := newFakeUserRepo()
	h := handler.NewUserHandler(newUserService(repo), testLogger())

	t.Run("empty table encodes as array", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
		rr := httptest.NewRecorder()

		h.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("returns stored users", func(t *testing.T) {
		hash := "$2a$04$fakehash"
		repo.Create(context.Background(), &model.User{Name: "A", Email: "a@example.com", PasswordHash: &hash})
		repo.Create(context.Background(), &model.User{Name: "B", Email: "b@example.com", PasswordHash: &hash})

		req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
		rr := httptest.NewRecorder()

		h.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var users []map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&users))
		assert.Len(t, users, 2)
	})
}

func TestUserHandler_HandleUpdate(t *testing.T) {
	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := newFakeUserRepo()
		h := handler.NewUserHandler(newUserService(repo), testLogger())

		user := &model.User{Name: "Before", Email: "keep@example.com"}
		repo.Create(context.Background(), user)

		reqBody := `{"name":"After"}`
		req := httptest.NewRequest(http.MethodPut, "/api/users/"+user.ID, bytes.NewBufferString(reqBody))
		req.SetPathValue("id", user.ID)
		rr := httptest.NewRecorder()

		h.HandleUpdate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "After", got["name"])
		assert.Equal(t, "keep@example.com", got["email"])
	})

	t.Run("unknown ID answers 404", func(t *testing.T) {
		h := handler.NewUserHandler(newUserService(newFakeUserRepo()), testLogger())

		req := httptest.NewRequest(http.MethodPut, "/api/users/ghost", bytes.NewBufferString(`{"name":"X"}`))
		req.SetPathValue("id", "ghost")
		rr := httptest.NewRecorder()

		h.HandleUpdate(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var errResp handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "not_found", errResp.Error)
	})
}

func TestUserHandler_HandleDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeUserRepo()
		h := handler.NewUserHandler(newUserService(repo), testLogger())

		user := &model.User{Name: "Doomed", Email: "doomed@example.com"}
		repo.Create(context.Background(), user)

		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+user.ID, nil)
		req.SetPathValue("id", user.ID)
		rr := httptest.NewRecorder()

		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true}`, rr.Body.String())
	})

	t.Run("unknown ID answers 404", func(t *testing.T) {
		h := handler.NewUserHandler(newUserService(newFakeUserRepo()), testLogger())

		req := httptest.NewRequest(http.MethodDelete, "/api/users/ghost", nil)
		req.SetPathValue("id", "ghost")
		rr := httptest.NewRecorder()

		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
