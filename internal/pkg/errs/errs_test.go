package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError_KnownCode(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrPostNotFound)
	req.Equal(ErrPostNotFound, err.Code)
	req.Equal(http.StatusNotFound, err.Status)
	req.NotEmpty(err.Message)
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	req := require.New(t)

	err := NewError(999999)
	req.Equal(ErrUnknown, err.Code)
	req.Equal(http.StatusInternalServerError, err.Status)
}

func TestNewError_DefaultsStatusToOK(t *testing.T) {
	req := require.New(t)

	// Codes with no explicit HTTP status respond 200 with the business code.
	err := NewError(ErrAlreadyLiked)
	req.Equal(ErrAlreadyLiked, err.Code)
	req.Equal(http.StatusOK, err.Status)
}

func TestNewError_ReturnsCopy(t *testing.T) {
	req := require.New(t)

	first := NewError(ErrPostNotFound)
	first.Message = "mutated"

	second := NewError(ErrPostNotFound)
	req.NotEqual("mutated", second.Message)
}

func TestCustomError_Error(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrUnauthorized)
	req.Contains(err.Error(), "3001")
	req.Contains(err.Error(), "401")
}
