package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cyberlink/internal/app/db"
	"cyberlink/internal/pkg/errs"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/resp"
)

// pathID parses the named chi URL parameter as a positive int64.
func pathID(r *http.Request, name string) (int64, *errs.CustomError) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewError(errs.ErrInvalidParams)
	}
	return id, nil
}

// HandleFeed returns every post decorated with the caller's engagement state.
func HandleFeed(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		posts, err := deps.DB.ListFeed(r.Context(), viewer.ID)
		if err != nil {
			logx.Error(err, "failed to list feed", "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"posts": posts})
	}
}

// HandleGetPost returns a single post with the caller's engagement state.
func HandleGetPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := pathID(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		post, err := deps.DB.GetFeedPost(r.Context(), viewer.ID, postID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
				return
			}

			logx.Error(err, "failed to fetch post", "post_id", postID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"post": post})
	}
}

// HandleBookmarkedPosts returns the posts the caller has bookmarked.
func HandleBookmarkedPosts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		posts, err := deps.DB.ListBookmarkedPosts(r.Context(), viewer.ID)
		if err != nil {
			logx.Error(err, "failed to list bookmarked posts", "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"posts": posts})
	}
}

// HandleListComments returns a post's comments with author display fields.
func HandleListComments(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := currentUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := pathID(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, err := deps.DB.GetPostByID(r.Context(), postID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
				return
			}

			logx.Error(err, "failed to fetch post for comments", "post_id", postID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		comments, err := deps.DB.ListComments(r.Context(), postID)
		if err != nil {
			logx.Error(err, "failed to list comments", "post_id", postID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"comments": comments})
	}
}

// HandleLikePost records the caller's like and notifies the post's author.
func HandleLikePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := pathID(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		post, err := deps.DB.GetPostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
				return
			}

			logx.Error(err, "failed to fetch post for like", "post_id", postID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.DB.AddLike(ctx, postID, viewer.ID); err != nil {
			if db.IsUniqueViolation(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLiked))
				return
			}

			logx.Error(err, "failed to add like", "post_id", postID, "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if post.UserID != viewer.ID {
			if err := deps.DB.CreateNotification(ctx, post.UserID, viewer.ID, viewer.Username+" Liked your Post"); err != nil {
				logx.Warn("failed to create like notification", "post_id", postID, "error", err)
			}
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Post liked"})
	}
}

// HandleUnlikePost removes the caller's like from a post.
func HandleUnlikePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := pathID(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		liked, err := deps.DB.HasLike(ctx, postID, viewer.ID)
		if err != nil {
			logx.Error(err, "failed to check like", "post_id", postID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if !liked {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotLiked))
			return
		}

		if err := deps.DB.RemoveLike(ctx, postID, viewer.ID); err != nil {
			logx.Error(err, "failed to remove like", "post_id", postID, "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Post unliked"})
	}
}

// HandleBookmarkPost adds a post to the caller's bookmarks.
func HandleBookmarkPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := pathID(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		if _, err := deps.DB.GetPostByID(ctx, postID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
				return
			}

			logx.Error(err, "failed to fetch post for bookmark", "post_id", postID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.DB.AddBookmark(ctx, postID, viewer.ID); err != nil {
			if db.IsUniqueViolation(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyBookmarked))
				return
			}

			logx.Error(err, "failed to add bookmark", "post_id", postID, "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Post bookmarked"})
	}
}

// HandleUnbookmarkPost removes a post from the caller's bookmarks.
func HandleUnbookmarkPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := pathID(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		bookmarked, err := deps.DB.HasBookmark(ctx, postID, viewer.ID)
		if err != nil {
			logx.Error(err, "failed to check bookmark", "post_id", postID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if !bookmarked {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotBookmarked))
			return
		}

		if err := deps.DB.RemoveBookmark(ctx, postID, viewer.ID); err != nil {
			logx.Error(err, "failed to remove bookmark", "post_id", postID, "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Post unbookmarked"})
	}
}
