package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/usecase"
	"restaurant-menu/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAuth struct {
	tokens map[string]int64
	roles  map[int64]entity.UserRole
	err    error
}

func (f *fakeAuth) VerifyToken(_ context.Context, token string) (int64, error) {
	id, ok := f.tokens[token]
	if !ok {
		return 0, usecase.ErrInvalidToken
	}
	return id, nil
}

func (f *fakeAuth) RequireRole(_ context.Context, userID int64, role entity.UserRole) error {
	if f.err != nil {
		return f.err
	}
	if f.roles[userID] != role {
		return usecase.ErrUnauthorized
	}
	return nil
}

func TestAuthenticate(t *testing.T) {
	auth := &fakeAuth{tokens: map[string]int64{"good": 7}}

	var gotID int64
	handler := Authenticate(auth, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusNoContent},
		{"lowercase scheme", "bearer good", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			req := httptest.NewRequest(http.MethodPost, "/add_dish", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, int64(7), gotID)
			} else {
				assert.Zero(t, gotID)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	auth := &fakeAuth{
		tokens: map[string]int64{"manager": 1, "customer": 2},
		roles:  map[int64]entity.UserRole{1: entity.RoleManager, 2: entity.RoleCustomer},
	}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	chain := func(a *fakeAuth) http.Handler {
		return Authenticate(a, zap.NewNop())(RequireRole(a, entity.RoleManager, zap.NewNop())(next))
	}

	tests := []struct {
		name   string
		auth   *fakeAuth
		token  string
		want   int
		called bool
	}{
		{"manager passes", auth, "manager", http.StatusOK, true},
		{"customer is forbidden", auth, "customer", http.StatusForbidden, false},
		{"store failure", &fakeAuth{tokens: auth.tokens, err: errors.New("db down")}, "manager", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodDelete, "/delete_dish/1", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			chain(tt.auth).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.called, called)
		})
	}

	t.Run("without Authenticate", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		RequireRole(auth, entity.RoleManager, zap.NewNop())(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add_dish", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menu", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":false`)
}
