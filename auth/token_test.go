package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateReturnsUserToken(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/validate", r.URL.Path)
		req.Equal("OAuth good-token", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"client_id":"cid","login":"foo","user_id":"123","scopes":["chat:read"],"expires_in":3600}`)
	}))
	defer srv.Close()

	token, err := NewValidator(srv.URL, srv.Client()).Validate(context.Background(), "good-token")

	req.NoError(err)
	req.Equal("123", token.UserID)
	req.Equal("foo", token.Login)
	req.Equal("cid", token.ClientID)
	req.Equal("good-token", token.AccessToken)
	req.False(token.ExpiresAt.IsZero())
}

func TestValidateRejectsBadToken(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":401,"message":"invalid access token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewValidator(srv.URL, srv.Client()).Validate(context.Background(), "bad-token")
	req.ErrorIs(err, ErrInvalidToken)

	_, err = NewValidator(srv.URL, srv.Client()).Validate(context.Background(), "  ")
	req.ErrorIs(err, ErrInvalidToken)
}

func TestValidateRejectsAppToken(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"client_id":"cid","scopes":[],"expires_in":3600}`)
	}))
	defer srv.Close()

	_, err := NewValidator(srv.URL, srv.Client()).Validate(context.Background(), "app-token")
	req.ErrorIs(err, ErrInvalidToken)
}
