package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	req := require.New(t)

	tokenString, err := GenerateToken(&Payload{Email: "ada@example.com"}, testSecret, time.Hour)
	req.NoError(err)
	req.NotEmpty(tokenString)

	parsed, err := ParseToken(tokenString, testSecret)
	req.NoError(err)
	req.Equal("ada@example.com", parsed.Email)
	req.Equal(TokenIssuer, parsed.Issuer)
}

func TestParseToken_WrongSecret(t *testing.T) {
	req := require.New(t)

	tokenString, err := GenerateToken(&Payload{Email: "ada@example.com"}, testSecret, time.Hour)
	req.NoError(err)

	_, err = ParseToken(tokenString, "a-different-secret")
	req.Error(err)
}

func TestParseToken_Expired(t *testing.T) {
	req := require.New(t)

	tokenString, err := GenerateToken(&Payload{Email: "ada@example.com"}, testSecret, -time.Minute)
	req.NoError(err)

	_, err = ParseToken(tokenString, testSecret)
	req.Error(err)
}

func TestParseToken_Garbage(t *testing.T) {
	req := require.New(t)

	_, err := ParseToken("not.a.token", testSecret)
	req.Error(err)
}
