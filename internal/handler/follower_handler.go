package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cyberlink/internal/app/db"
	"cyberlink/internal/pkg/errs"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/req"
	"cyberlink/internal/pkg/resp"
)

// HandleSearchUser returns accounts whose username contains the search term.
func HandleSearchUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := currentUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		term := chi.URLParam(r, "search")
		if term == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		users, err := deps.DB.SearchUsers(r.Context(), term)
		if err != nil {
			logx.Error(err, "user search failed", "term", term)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"users": users})
	}
}

// HandleUserProfile returns another account's public profile, including the
// caller's follow state toward it. Profiles of accounts that blocked the
// caller are withheld.
func HandleUserProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		username := chi.URLParam(r, "username")

		target, err := deps.DB.GetUserByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "failed to fetch profile", "username", username)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		ctx := r.Context()

		blocked, err := deps.DB.IsBlocked(ctx, target.ID, viewer.ID)
		if err != nil {
			logx.Error(err, "failed to check block state", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if blocked {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		isFollowing, err := deps.DB.IsFollowing(ctx, target.ID, viewer.ID)
		if err != nil {
			logx.Error(err, "failed to check follow state", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		isBlocked, err := deps.DB.IsBlocked(ctx, viewer.ID, target.ID)
		if err != nil {
			logx.Error(err, "failed to check block state", "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		postCount, err := deps.DB.CountPostsByUser(ctx, target.ID)
		if err != nil {
			logx.Error(err, "failed to count posts", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		followerCount, err := deps.DB.CountFollowers(ctx, target.ID)
		if err != nil {
			logx.Error(err, "failed to count followers", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		followingCount, err := deps.DB.CountFollowing(ctx, target.ID)
		if err != nil {
			logx.Error(err, "failed to count following", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		posts, err := deps.DB.ListPostsByUser(ctx, target.ID)
		if err != nil {
			logx.Error(err, "failed to list user posts", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"id":             target.ID,
			"username":       target.Username,
			"firstName":      target.FirstName,
			"lastName":       target.LastName,
			"biography":      target.Biography,
			"profilePicture": target.ProfilePicture,
			"isFollowing":    isFollowing,
			"isBlocked":      isBlocked,
			"postCount":      postCount,
			"followerCount":  followerCount,
			"followingCount": followingCount,
			"posts":          posts,
		})
	}
}

type FollowInput struct {
	Username string `json:"username"`
}

// HandleFollow adds the caller as a follower of the named account and
// notifies that account.
func HandleFollow(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		target, customErr := resolveTarget(deps, r, viewer.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		blocked, err := deps.DB.IsBlocked(ctx, target.ID, viewer.ID)
		if err != nil {
			logx.Error(err, "failed to check block state", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if blocked {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		isFollowing, err := deps.DB.IsFollowing(ctx, target.ID, viewer.ID)
		if err != nil {
			logx.Error(err, "failed to check follow state", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if isFollowing {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyFollowing))
			return
		}

		if err := deps.DB.AddFollower(ctx, target.ID, viewer.ID); err != nil {
			logx.Error(err, "failed to add follower", "user_id", target.ID, "follower_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.DB.CreateNotification(ctx, target.ID, viewer.ID, viewer.Username+" is following you"); err != nil {
			logx.Warn("failed to create follow notification", "user_id", target.ID, "error", err)
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Followed"})
	}
}

// HandleUnfollow removes the caller from the named account's followers.
func HandleUnfollow(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		target, customErr := resolveTarget(deps, r, viewer.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		isFollowing, err := deps.DB.IsFollowing(ctx, target.ID, viewer.ID)
		if err != nil {
			logx.Error(err, "failed to check follow state", "user_id", target.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if !isFollowing {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotFollowing))
			return
		}

		if err := deps.DB.RemoveFollower(ctx, target.ID, viewer.ID); err != nil {
			logx.Error(err, "failed to remove follower", "user_id", target.ID, "follower_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Unfollowed"})
	}
}

// HandleBlock blocks the named account. Blocking severs the follow
// relationship in both directions.
func HandleBlock(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		target, customErr := resolveTarget(deps, r, viewer.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		alreadyBlocked, err := deps.DB.IsBlocked(ctx, viewer.ID, target.ID)
		if err != nil {
			logx.Error(err, "failed to check block state", "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if alreadyBlocked {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyBlocked))
			return
		}

		if err := deps.DB.AddBlock(ctx, viewer.ID, target.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.DB.RemoveFollower(ctx, viewer.ID, target.ID); err != nil {
			logx.Warn("failed to sever follower edge on block", "user_id", viewer.ID, "error", err)
		}
		if err := deps.DB.RemoveFollower(ctx, target.ID, viewer.ID); err != nil {
			logx.Warn("failed to sever following edge on block", "user_id", viewer.ID, "error", err)
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Blocked"})
	}
}

// HandleUnblock removes the named account from the caller's block list.
func HandleUnblock(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		target, customErr := resolveTarget(deps, r, viewer.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		blocked, err := deps.DB.IsBlocked(ctx, viewer.ID, target.ID)
		if err != nil {
			logx.Error(err, "failed to check block state", "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if !blocked {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotBlocked))
			return
		}

		if err := deps.DB.RemoveBlock(ctx, viewer.ID, target.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Unblocked"})
	}
}

// HandleBlockedUsers lists the accounts the caller has blocked.
func HandleBlockedUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		users, err := deps.DB.ListBlockedUsers(r.Context(), viewer.ID)
		if err != nil {
			logx.Error(err, "failed to list blocked users", "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"blocked": users})
	}
}

// resolveTarget binds the {username} request body and loads the named account,
// rejecting self-referential operations.
func resolveTarget(deps *AppDeps, r *http.Request, viewerID int64) (*db.User, *errs.CustomError) {
	var input FollowInput
	if customErr := req.BindJSON(r, &input); customErr != nil {
		return nil, customErr
	}

	if input.Username == "" {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	target, err := deps.DB.GetUserByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, errs.NewError(errs.ErrUserNotFound)
		}

		logx.Error(err, "failed to fetch target user", "username", input.Username)
		return nil, errs.NewError(errs.ErrUnknown)
	}

	if target.ID == viewerID {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	return target, nil
}
