/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Content and Social Graph Errors
	ErrPostNotFound:          {Code: ErrPostNotFound, Message: "Post not found.", Status: http.StatusNotFound},
	ErrCommentNotFound:       {Code: ErrCommentNotFound, Message: "Comment not found.", Status: http.StatusNotFound},
	ErrStoryNotFound:         {Code: ErrStoryNotFound, Message: "Story not found.", Status: http.StatusNotFound},
	ErrImageNotFound:         {Code: ErrImageNotFound, Message: "Image not found.", Status: http.StatusNotFound},
	ErrAlreadyLiked:          {Code: ErrAlreadyLiked, Message: "You already liked this post."},
	ErrNotLiked:              {Code: ErrNotLiked, Message: "You have not liked this post."},
	ErrAlreadyBookmarked:     {Code: ErrAlreadyBookmarked, Message: "Post already bookmarked."},
	ErrNotBookmarked:         {Code: ErrNotBookmarked, Message: "Post not bookmarked."},
	ErrAlreadyFollowing:      {Code: ErrAlreadyFollowing, Message: "Already following this user."},
	ErrNotFollowing:          {Code: ErrNotFollowing, Message: "Not following this user."},
	ErrAlreadyBlocked:        {Code: ErrAlreadyBlocked, Message: "User already blocked."},
	ErrNotBlocked:            {Code: ErrNotBlocked, Message: "User not blocked."},
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Content is too long."},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrForbidden:          {Code: ErrForbidden, Message: "You are not allowed to perform this action.", Status: http.StatusForbidden},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid email or password.", Status: http.StatusUnauthorized},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "Username or email already exists."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrInvalidUsername:    {Code: ErrInvalidUsername, Message: "Invalid username."},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Invalid password."},
	ErrInvalidOTP:         {Code: ErrInvalidOTP, Message: "Invalid one time password."},
	ErrOTPDeliveryFailed:  {Code: ErrOTPDeliveryFailed, Message: "Could not send the one time password. Please try again later.", Status: http.StatusInternalServerError},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},

	// 4xxx: File and Storage Errors
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusInternalServerError},
	ErrFileTypeInvalid:   {Code: ErrFileTypeInvalid, Message: "Unsupported image type."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
