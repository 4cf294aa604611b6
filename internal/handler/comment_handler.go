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

const maxCommentLength = 500

type AddCommentInput struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

// HandleAddComment attaches a comment to a post.
func HandleAddComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input AddCommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		content := strings.TrimSpace(input.Content)
		if content == "" || utf8.RuneCountInString(content) > maxCommentLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if _, err := deps.DB.GetPostByID(r.Context(), input.PostID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
				return
			}

			logx.Error(err, "failed to fetch post for comment", "post_id", input.PostID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		commentID, err := deps.DB.CreateComment(r.Context(), input.PostID, viewer.ID, content)
		if err != nil {
			logx.Error(err, "failed to create comment", "post_id", input.PostID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": "Comment added",
			"id":      commentID,
		})
	}
}

type EditCommentInput struct {
	CommentID int64  `json:"commentId"`
	Content   string `json:"content"`
}

// HandleEditComment rewrites one of the caller's own comments.
func HandleEditComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input EditCommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		content := strings.TrimSpace(input.Content)
		if content == "" || utf8.RuneCountInString(content) > maxCommentLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		comment, err := deps.DB.GetCommentByID(r.Context(), input.CommentID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrCommentNotFound))
				return
			}

			logx.Error(err, "failed to fetch comment for edit", "comment_id", input.CommentID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if comment.UserID != viewer.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		if err := deps.DB.UpdateComment(r.Context(), comment.ID, content); err != nil {
			logx.Error(err, "failed to update comment", "comment_id", comment.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Comment updated"})
	}
}

type DeleteCommentInput struct {
	CommentID int64 `json:"commentId"`
}

// HandleDeleteComment removes a comment. The comment's author and the owner
// of the commented post may both delete it.
func HandleDeleteComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, customErr := currentUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input DeleteCommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		comment, err := deps.DB.GetCommentByID(r.Context(), input.CommentID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrCommentNotFound))
				return
			}

			logx.Error(err, "failed to fetch comment for delete", "comment_id", input.CommentID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if comment.UserID != viewer.ID {
			post, err := deps.DB.GetPostByID(r.Context(), comment.PostID)
			if err != nil || post.UserID != viewer.ID {
				resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
				return
			}
		}

		if err := deps.DB.DeleteComment(r.Context(), comment.ID); err != nil {
			logx.Error(err, "failed to delete comment", "comment_id", comment.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": "Comment deleted"})
	}
}
