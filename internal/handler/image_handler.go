package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cyberlink/internal/pkg/errs"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/resp"
)

const downloadLinkTTL = 15 * time.Minute

// HandleImageDownload resolves a stored image key to a short-lived
// presigned download URL. The key is taken from the trailing wildcard of
// the route, so keys with slashes pass through unescaped.
func HandleImageDownload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := currentUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if key == "" || strings.Contains(key, "..") {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		exists, err := deps.Storage.Exists(r.Context(), key)
		if err != nil {
			logx.Error(err, "failed to check image object", "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}
		if !exists {
			resp.RespondError(w, r, errs.NewError(errs.ErrImageNotFound))
			return
		}

		url, err := deps.Storage.PresignDownload(r.Context(), key, downloadLinkTTL)
		if err != nil {
			logx.Error(err, "failed to presign image download", "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"url": url})
	}
}
