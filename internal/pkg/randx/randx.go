/*
Package randx provides functions for generating cryptographically secure random numbers and unique identifiers.

It is primarily used to generate numeric one-time password codes and unique object storage keys for images.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	// OTPDigits defines the character set used for one-time password codes.
	OTPDigits = "0123456789"

	// OTPLength is the fixed length of a generated one-time password code.
	OTPLength = 6
)

// OTPCode generates a numeric one-time password code using a cryptographically
// secure random number generator (crypto/rand).
// It returns a string of length OTPLength and any error encountered.
func OTPCode() (string, error) {
	digitsLen := big.NewInt(int64(len(OTPDigits)))

	result := make([]byte, OTPLength)

	for i := 0; i < OTPLength; i++ {
		num, err := rand.Int(rand.Reader, digitsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for OTP code: %v", err)
		}

		result[i] = OTPDigits[num.Int64()]
	}

	return string(result), nil
}

// ImageKey generates a unique object storage key for an uploaded image.
// The key is namespaced under the given prefix (e.g. "avatars", "posts") and
// preserves the lowercase file extension of the original filename.
func ImageKey(prefix string, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
}

// IsValidOTP checks if the given string is a well-formed one-time password code.
// Validity criteria include: length equals OTPLength and all characters are digits.
func IsValidOTP(code string) bool {
	if len(code) != OTPLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(OTPDigits, char) {
			return false
		}
	}

	return true
}
