package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "admin", payload["username"])

		json.NewEncoder(w).Encode(Session{ID: 1, Username: "admin", IsAdmin: true, AccessToken: "token-123"})
	}))
	defer server.Close()

	c := New(server.URL)
	session, err := c.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "token-123", session.AccessToken)
	assert.Equal(t, "token-123", c.Token())
}

func TestRequestsCarryBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		require.Equal(t, "/inventory", r.URL.Path)
		json.NewEncoder(w).Encode([]Item{{ID: 1, SN: "SN-1001"}})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("token-123"))
	items, err := c.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "SN-1001", items[0].SN)
}

func TestErrorEnvelopeParsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "FORBIDDEN", "message": "admin privileges required"},
		})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("token-123"))
	err := c.DeleteItem(context.Background(), 4)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "FORBIDDEN", apiErr.Code)
	assert.Equal(t, "admin privileges required", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "FORBIDDEN")
}

func TestNonJSONErrorFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Items(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Code)
}

func TestLogoutClearsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, WithToken("token-123"))
	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
}

func TestUpdateItemStatusPath(t *testing.T) {
	terminal := "T-1122"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/inventory/7/status", r.URL.Path)

		var payload StatusInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "En Comercio", payload.EstadoActual)

		json.NewEncoder(w).Encode(Item{ID: 7, EstadoActual: payload.EstadoActual, TerminalComercio: payload.TerminalComercio})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("token-123"))
	item, err := c.UpdateItemStatus(context.Background(), 7, StatusInput{EstadoActual: "En Comercio", TerminalComercio: &terminal})
	require.NoError(t, err)
	assert.Equal(t, "En Comercio", item.EstadoActual)
	require.NotNil(t, item.TerminalComercio)
	assert.Equal(t, "T-1122", *item.TerminalComercio)
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/item-codes", r.URL.Path)
		json.NewEncoder(w).Encode([]ItemCode{})
	}))
	defer server.Close()

	c := New(server.URL+"/", WithToken("token-123"))
	_, err := c.ItemCodes(context.Background())
	require.NoError(t, err)
}
