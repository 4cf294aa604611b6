/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Content and Social Graph Errors
const (
	// ErrPostNotFound indicates the requested post does not exist.
	ErrPostNotFound = 2101

	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = 2102

	// ErrStoryNotFound indicates the requested story does not exist.
	ErrStoryNotFound = 2103

	// ErrImageNotFound indicates the requested image object does not exist in storage.
	ErrImageNotFound = 2104

	// ErrAlreadyLiked indicates the caller already liked the post.
	ErrAlreadyLiked = 2201

	// ErrNotLiked indicates the caller has not liked the post.
	ErrNotLiked = 2202

	// ErrAlreadyBookmarked indicates the caller already bookmarked the post.
	ErrAlreadyBookmarked = 2203

	// ErrNotBookmarked indicates the caller has not bookmarked the post.
	ErrNotBookmarked = 2204

	// ErrAlreadyFollowing indicates the caller already follows the target user.
	ErrAlreadyFollowing = 2301

	// ErrNotFollowing indicates the caller does not follow the target user.
	ErrNotFollowing = 2302

	// ErrAlreadyBlocked indicates the caller already blocked the target user.
	ErrAlreadyBlocked = 2303

	// ErrNotBlocked indicates the caller has not blocked the target user.
	ErrNotBlocked = 2304

	// ErrMessageContentTooLong indicates that content exceeded the maximum length limit.
	ErrMessageContentTooLong = 2401
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates the caller is not authenticated.
	ErrUnauthorized = 3001

	// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
	ErrForbidden = 3002

	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = 3003

	// ErrUserAlreadyExists indicates the username or email is already taken.
	ErrUserAlreadyExists = 3004

	// ErrUserNotFound indicates the referenced user account does not exist.
	ErrUserNotFound = 3005

	// ErrInvalidUsername indicates the username failed validation.
	ErrInvalidUsername = 3006

	// ErrInvalidEmail indicates the email address failed validation.
	ErrInvalidEmail = 3007

	// ErrInvalidPassword indicates the password failed validation.
	ErrInvalidPassword = 3008

	// ErrInvalidOTP indicates a missing, wrong, or already consumed one-time password.
	ErrInvalidOTP = 3009

	// ErrOTPDeliveryFailed indicates the one-time password email could not be sent.
	ErrOTPDeliveryFailed = 3010

	// ErrAlreadyLoggedIn indicates the caller presented a valid token on an anonymous-only route.
	ErrAlreadyLoggedIn = 3011
)

// 4xxx: File and Storage Errors
const (
	// ErrFileStorageFailed indicates the object storage write failed.
	ErrFileStorageFailed = 4001

	// ErrFileTypeInvalid indicates the uploaded file is not an accepted image type.
	ErrFileTypeInvalid = 4002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
