package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"cyberlink/internal/app/db"
	"cyberlink/internal/pkg/errs"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/req"
	"cyberlink/internal/pkg/resp"
)

const maxPostContentLength = 1000

// HandleAddPost creates a post from a multipart form with a "content" field
// and an optional "image" file, then notifies the caller's followers.
func HandleAddPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		content := strings.TrimSpace(r.FormValue("content"))
		if content == "" || utf8.RuneCountInString(content) > maxPostContentLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var imageKey string
		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			defer file.Close()

			imageKey, customErr = storeUploadedImage(deps, r, file, header, "posts")
			if customErr != nil {
				resp.RespondError(w, r, customErr)
				return
			}
		case errors.Is(err, http.ErrMissingFile):
			// text-only post
		default:
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		ctx := r.Context()

		post, err := deps.DB.CreatePost(ctx, viewer.ID, content, imageKey)
		if err != nil {
			logx.Error(err, "failed to create post", "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		followerIDs, err := deps.DB.ListFollowerIDs(ctx, viewer.ID)
		if err != nil {
			logx.Warn("failed to list followers for post notification", "user_id", viewer.ID, "error", err)
		} else {
			for _, followerID := range followerIDs {
				if err := deps.DB.CreateNotification(ctx, followerID, viewer.ID, "New Post"); err != nil {
					logx.Warn("failed to create post notification", "user_id", followerID, "error", err)
				}
			}
		}

		logx.Info("post created", "post_id", post.ID, "user_id", viewer.ID)

		resp.RespondSuccess(w, r, map[string]any{
			"message": "Post created",
			"id":      post.ID,
		})
	}
}

type EditPostInput struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

// HandleEditPost rewrites the text of one of the caller's own posts.
func HandleEditPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input EditPostInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		content := strings.TrimSpace(input.Content)
		if content == "" || utf8.RuneCountInString(content) > maxPostContentLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		post, err := deps.DB.GetPostByID(r.Context(), input.PostID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
				return
			}

			logx.Error(err, "failed to fetch post for edit", "post_id", input.PostID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if post.UserID != viewer.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		if err := deps.DB.UpdatePostContent(r.Context(), post.ID, content); err != nil {
			logx.Error(err, "failed to update post", "post_id", post.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Post updated"})
	}
}

type DeletePostInput struct {
	PostID int64 `json:"postId"`
}

// HandleDeletePost removes one of the caller's own posts and its image object.
func HandleDeletePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input DeletePostInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		post, err := deps.DB.GetPostByID(r.Context(), input.PostID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
				return
			}

			logx.Error(err, "failed to fetch post for delete", "post_id", input.PostID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if post.UserID != viewer.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		if err := deps.DB.DeletePost(r.Context(), post.ID); err != nil {
			logx.Error(err, "failed to delete post", "post_id", post.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if post.Image != "" {
			if err := deps.Storage.Delete(r.Context(), post.Image); err != nil {
				logx.Warn("failed to delete post image object", "key", post.Image, "error", err)
			}
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Post deleted"})
	}
}
