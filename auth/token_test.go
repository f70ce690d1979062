package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())

		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "https://manage.devcenter.microsoft.com", r.PostForm.Get("resource"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok", "token_type": "Bearer", "expires_in": 3600}`))
	}))
	defer server.Close()

	token, err := TokenProvider{}.AcquireToken(context.Background(), server.URL,
		"client", "secret", "https://manage.devcenter.microsoft.com")
	require.NoError(t, err)

	assert.Equal(t, "tok", token.AccessToken)
}

func TestAcquireTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid_client"}`))
	}))
	defer server.Close()

	_, err := TokenProvider{}.AcquireToken(context.Background(), server.URL,
		"client", "bad", "scope")
	require.Error(t, err)

	var authErr AuthenticationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, server.URL, authErr.TokenEndpoint)
}

func TestAcquireTokenEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "", "token_type": "Bearer"}`))
	}))
	defer server.Close()

	_, err := TokenProvider{}.AcquireToken(context.Background(), server.URL,
		"client", "secret", "scope")

	assert.IsType(t, AuthenticationError{}, err)
}
