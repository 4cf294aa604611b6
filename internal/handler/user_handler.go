package handler

import (
	"net/http"
	"unicode/utf8"

	"cyberlink/internal/pkg/errs"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/req"
	"cyberlink/internal/pkg/resp"
)

const maxBiographyLength = 500

type EditBiographyInput struct {
	Biography string `json:"biography"`
}

// HandleEditBiography replaces the caller's profile biography.
func HandleEditBiography(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input EditBiographyInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if utf8.RuneCountInString(input.Biography) > maxBiographyLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := deps.DB.UpdateBiography(r.Context(), user.ID, input.Biography); err != nil {
			logx.Error(err, "failed to update biography", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Biography updated"})
	}
}

// HandleEditPicture accepts a multipart image upload and makes it the caller's
// profile picture. The previous picture object is left in place so older
// presigned links keep working until they expire.
func HandleEditPicture(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		defer file.Close()

		key, customErr := storeUploadedImage(deps, r, file, header, "avatars")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.DB.UpdateProfilePicture(r.Context(), user.ID, key); err != nil {
			logx.Error(err, "failed to update profile picture", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": "Profile picture updated",
			"image":   key,
		})
	}
}

// HandleMyProfile returns the caller's own profile, including counters and posts.
func HandleMyProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		postCount, err := deps.DB.CountPostsByUser(ctx, user.ID)
		if err != nil {
			logx.Error(err, "failed to count posts", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		followerCount, err := deps.DB.CountFollowers(ctx, user.ID)
		if err != nil {
			logx.Error(err, "failed to count followers", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		followingCount, err := deps.DB.CountFollowing(ctx, user.ID)
		if err != nil {
			logx.Error(err, "failed to count following", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		posts, err := deps.DB.ListPostsByUser(ctx, user.ID)
		if err != nil {
			logx.Error(err, "failed to list own posts", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"id":             user.ID,
			"username":       user.Username,
			"email":          user.Email,
			"firstName":      user.FirstName,
			"lastName":       user.LastName,
			"biography":      user.Biography,
			"profilePicture": user.ProfilePicture,
			"postCount":      postCount,
			"followerCount":  followerCount,
			"followingCount": followingCount,
			"posts":          posts,
		})
	}
}

// HandleNotifications returns the caller's unread notifications and marks
// them as seen, so each notification is delivered once.
func HandleNotifications(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		notifications, err := deps.DB.ListUnreadNotifications(r.Context(), user.ID)
		if err != nil {
			logx.Error(err, "failed to list notifications", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.DB.MarkNotificationsRead(r.Context(), user.ID); err != nil {
			logx.Error(err, "failed to mark notifications read", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"notifications": notifications})
	}
}

// HandleFollowers lists the accounts following the caller.
func HandleFollowers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		followers, err := deps.DB.ListFollowers(r.Context(), user.ID)
		if err != nil {
			logx.Error(err, "failed to list followers", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"followers": followers})
	}
}

// HandleFollowing lists the accounts the caller follows.
func HandleFollowing(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		following, err := deps.DB.ListFollowing(r.Context(), user.ID)
		if err != nil {
			logx.Error(err, "failed to list following", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"following": following})
	}
}
