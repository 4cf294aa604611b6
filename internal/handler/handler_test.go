package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestUsernameValidation(t *testing.T) {
	req := require.New(t)

	req.True(usernameRegex.MatchString("ada_lovelace"))
	req.True(usernameRegex.MatchString("user.name42"))
	req.False(usernameRegex.MatchString("ab"))
	req.False(usernameRegex.MatchString("has spaces"))
	req.False(usernameRegex.MatchString("semi;colon"))
	req.False(usernameRegex.MatchString(""))
}

func TestEmailValidation(t *testing.T) {
	req := require.New(t)

	req.True(emailRegex.MatchString("ada@example.com"))
	req.False(emailRegex.MatchString("ada@example"))
	req.False(emailRegex.MatchString("not-an-email"))
	req.False(emailRegex.MatchString("two@@example.com"))
	req.False(emailRegex.MatchString(""))
}

func requestWithURLParam(name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	req := require.New(t)

	id, customErr := pathID(requestWithURLParam("id", "42"), "id")
	req.Nil(customErr)
	req.Equal(int64(42), id)

	_, customErr = pathID(requestWithURLParam("id", "0"), "id")
	req.NotNil(customErr)

	_, customErr = pathID(requestWithURLParam("id", "-3"), "id")
	req.NotNil(customErr)

	_, customErr = pathID(requestWithURLParam("id", "abc"), "id")
	req.NotNil(customErr)
}
