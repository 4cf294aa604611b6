package handler

import (
	"errors"
	"net/http"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"cyberlink/internal/app/db"
	"cyberlink/internal/pkg/auth/jwt"
	"cyberlink/internal/pkg/errs"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/randx"
	"cyberlink/internal/pkg/req"
	"cyberlink/internal/pkg/resp"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// HandleRegister processes the request to create a new account.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !usernameRegex.MatchString(input.Username) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		passwordLen := utf8.RuneCountInString(input.Password)
		if passwordLen < 6 || passwordLen > 50 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		if input.FirstName == "" || input.LastName == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		user, err := deps.DB.CreateUser(r.Context(), input.Username, input.Email, string(hashedPassword), input.FirstName, input.LastName)
		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("registration conflict: username or email already exists", "username", input.Username)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		logx.Info("account registered", "user_id", user.ID, "username", user.Username)

		resp.RespondSuccess(w, r, map[string]any{
			"message": "User registered successfully.",
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies account credentials and issues a JWT token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.DB.GetUserByEmail(r.Context(), input.Email)
		if err != nil {
			logx.Warn("login: user fetch failed", "email", input.Email, "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		payload := &jwt.Payload{Email: user.Email}

		tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "failed to generate token on login")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token":    tokenString,
			"username": user.Username,
		})
	}
}

type PasswordOTPInput struct {
	Email string `json:"email"`
}

// HandlePasswordOTP generates a one-time password, stores it on the account,
// and emails it to the address on file. To avoid leaking which addresses have
// accounts, an unknown email produces the same success response.
func HandlePasswordOTP(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input PasswordOTPInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.DB.GetUserByEmail(r.Context(), input.Email)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondSuccess(w, r, map[string]any{"message": "One Time Password sent"})
				return
			}

			logx.Error(err, "passwordotp: user fetch failed", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		code, err := randx.OTPCode()
		if err != nil {
			logx.Error(err, "failed to generate OTP code")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.DB.SetOTP(r.Context(), user.ID, code); err != nil {
			logx.Error(err, "failed to store OTP code", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Mailer.SendOTP(user.Email, code); err != nil {
			logx.Error(err, "failed to deliver OTP email", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrOTPDeliveryFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "One Time Password sent"})
	}
}

type ChangePasswordInput struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// HandleChangePassword sets a new password after checking the pending
// one-time password, which is consumed on success.
func HandleChangePassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ChangePasswordInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !randx.IsValidOTP(input.OTP) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidOTP))
			return
		}

		passwordLen := utf8.RuneCountInString(input.NewPassword)
		if passwordLen < 6 || passwordLen > 50 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		user, err := deps.DB.GetUserByEmail(r.Context(), input.Email)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "changepassword: user fetch failed", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if user.OTP == nil || *user.OTP != input.OTP {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidOTP))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.DB.UpdatePassword(r.Context(), user.ID, string(hashedPassword)); err != nil {
			logx.Error(err, "failed to update password", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Password updated successfully"})
	}
}

// HandleAuthentication reports whether the caller's token resolves to an account.
func HandleAuthentication(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := currentUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message":    "Authorised",
			"authorised": true,
		})
	}
}

type DeleteAccountInput struct {
	Password string `json:"password"`
}

// HandleDeleteAccount removes the caller's account after re-checking the password.
// Any live messaging session for the account is closed as part of deletion.
func HandleDeleteAccount(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input DeleteAccountInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := deps.DB.DeleteUser(r.Context(), user.ID); err != nil {
			logx.Error(err, "failed to delete account", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if sess, ok := deps.Registry.Lookup(user.ID); ok {
			sess.Kick("Account deleted")
		}

		logx.Info("account deleted", "user_id", user.ID)

		resp.RespondSuccess(w, r, map[string]any{"message": "User deleted successfully"})
	}
}
