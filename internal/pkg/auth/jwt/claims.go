package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the structure of the JSON Web Token (JWT) claims for CyberLink.
// The mobile client is identified across every API call and the messaging socket
// by its email claim; the user row is resolved from it per request.
type Payload struct {
	// StandardClaims embeds the necessary JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer). These are crucial for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// Email is the account email the token was issued for. It is the stable
	// identity claim; handlers look up the user record by it.
	Email string `json:"email"`
}
