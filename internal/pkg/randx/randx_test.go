package randx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOTPCode(t *testing.T) {
	req := require.New(t)

	code, err := OTPCode()
	req.NoError(err)
	req.Len(code, OTPLength)
	req.True(IsValidOTP(code))
}

func TestIsValidOTP(t *testing.T) {
	req := require.New(t)

	req.True(IsValidOTP("042917"))
	req.False(IsValidOTP(""))
	req.False(IsValidOTP("12345"))
	req.False(IsValidOTP("1234567"))
	req.False(IsValidOTP("12a456"))
	req.False(IsValidOTP("12 456"))
}

func TestImageKey(t *testing.T) {
	req := require.New(t)

	key := ImageKey("avatars", "Photo.JPG")
	req.True(strings.HasPrefix(key, "avatars/"))
	req.True(strings.HasSuffix(key, ".jpg"))

	// Keys for the same filename never collide.
	req.NotEqual(key, ImageKey("avatars", "Photo.JPG"))

	// A filename without an extension yields a bare key.
	bare := ImageKey("posts", "upload")
	req.True(strings.HasPrefix(bare, "posts/"))
	req.False(strings.Contains(strings.TrimPrefix(bare, "posts/"), "."))
}
