package handler

import (
	"errors"
	"net/http"

	"cyberlink/internal/app/db"
	"cyberlink/internal/pkg/errs"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/req"
	"cyberlink/internal/pkg/resp"
)

// HandleAddStory creates a story from a required multipart "image" file and
// notifies the caller's followers.
func HandleAddStory(deps *AppDeps) http.HandlerFunc {
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

		file, header, err := r.FormFile("image")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		defer file.Close()

		key, customErr := storeUploadedImage(deps, r, file, header, "stories")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := r.Context()

		storyID, err := deps.DB.CreateStory(ctx, viewer.ID, key)
		if err != nil {
			logx.Error(err, "failed to create story", "user_id", viewer.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		followerIDs, err := deps.DB.ListFollowerIDs(ctx, viewer.ID)
		if err != nil {
			logx.Warn("failed to list followers for story notification", "user_id", viewer.ID, "error", err)
		} else {
			for _, followerID := range followerIDs {
				if err := deps.DB.CreateNotification(ctx, followerID, viewer.ID, "New Story"); err != nil {
					logx.Warn("failed to create story notification", "user_id", followerID, "error", err)
				}
			}
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": "Story created",
			"id":      storyID,
		})
	}
}

// HandleViewStory returns a story with its author's username.
func HandleViewStory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := currentUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		storyID, customErr := pathID(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		story, err := deps.DB.GetStory(r.Context(), storyID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrStoryNotFound))
				return
			}

			logx.Error(err, "failed to fetch story", "story_id", storyID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"story": story})
	}
}
