package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"agriscan/internal/dashboard/client"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *FileTokenStore {
	t.Helper()
	return NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
}

func profileResponse() map[string]any {
	return map[string]any{
		"success": true,
		"data": map[string]any{
			"userId":    "u-1",
			"phone":     "+1234567890",
			"full_name": "Test Inspector",
			"role":      "inspector",
		},
	}
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Token()
	assert.False(t, ok, "missing file means no token")

	assert.NoError(t, store.Save("abc"))
	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	assert.NoError(t, store.Clear())
	_, ok = store.Token()
	assert.False(t, ok)

	assert.NoError(t, store.Clear(), "clearing an already-empty store is not an error")
}

func TestInit_StoredTokenResolvesProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/profile/", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(profileResponse())
	}))
	defer server.Close()

	tokens := newTestStore(t)
	assert.NoError(t, tokens.Save("abc"))
	manager := NewManager(client.New(server.URL, tokens), tokens)

	assert.True(t, manager.Loading())
	manager.Init(context.Background())

	assert.False(t, manager.Loading())
	assert.True(t, manager.IsAuthenticated())
	assert.Equal(t, "u-1", manager.CurrentUser().UserID)
}

func TestInit_FailingProfileFetchClearsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "INVALID_TOKEN", "message": "token expired"},
		})
	}))
	defer server.Close()

	tokens := newTestStore(t)
	assert.NoError(t, tokens.Save("stale"))
	manager := NewManager(client.New(server.URL, tokens), tokens)

	manager.Init(context.Background())

	assert.False(t, manager.Loading())
	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.CurrentUser())
	_, ok := tokens.Token()
	assert.False(t, ok, "a failing profile fetch clears the token")
}

func TestInit_NoTokenSkipsProfileFetch(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	tokens := newTestStore(t)
	manager := NewManager(client.New(server.URL, tokens), tokens)

	manager.Init(context.Background())

	assert.False(t, called)
	assert.False(t, manager.IsAuthenticated())
	assert.False(t, manager.Loading())
}

func TestLoginThenLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"userId":       "u-1",
					"phone":        "+1234567890",
					"full_name":    "Test Inspector",
					"role":         "inspector",
					"access_token": "abc",
				},
			})
		case "/auth/logout/":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	tokens := newTestStore(t)
	manager := NewManager(client.New(server.URL, tokens), tokens)

	user, err := manager.Login(context.Background(), "+1234567890", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "Test Inspector", user.FullName)
	assert.True(t, manager.IsAuthenticated())
	token, ok := tokens.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	manager.Logout(context.Background())

	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.CurrentUser())
	_, ok = tokens.Token()
	assert.False(t, ok, "logout clears the persisted token")
}

func TestLogin_FailureLeavesManagerUnauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "INVALID_CREDENTIALS", "message": "wrong phone or password"},
		})
	}))
	defer server.Close()

	tokens := newTestStore(t)
	manager := NewManager(client.New(server.URL, tokens), tokens)

	_, err := manager.Login(context.Background(), "+1234567890", "wrong")

	assert.Error(t, err)
	assert.False(t, manager.IsAuthenticated())
	_, ok := tokens.Token()
	assert.False(t, ok)
}
