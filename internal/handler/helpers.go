/*
Package handler provides the HTTP handlers and routing setup for the CyberLink server.

This file contains helpers shared across the handler files: resolving the
authenticated caller's account from the JWT email claim, and storing uploaded
images in the object storage service.
*/
package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"cyberlink/internal/app/db"
	"cyberlink/internal/pkg/auth/jwt"
	"cyberlink/internal/pkg/errs"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/randx"
)

// allowedImageExtensions lists the accepted upload types for avatars, posts, and stories.
var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// currentUser resolves the authenticated caller's account from the request's
// JWT email claim. An anonymous request or a claim without a matching account
// yields an ErrUnauthorized.
func currentUser(deps *AppDeps, r *http.Request) (*db.User, *errs.CustomError) {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return nil, errs.NewError(errs.ErrUnauthorized)
	}

	user, err := deps.DB.GetUserByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			// A valid token for a deleted account.
			return nil, errs.NewError(errs.ErrUnauthorized)
		}

		logx.Error(err, "failed to resolve authenticated user", "email", payload.Email)
		return nil, errs.NewError(errs.ErrUnknown)
	}

	return user, nil
}

// storeUploadedImage validates the multipart image file and streams it into
// object storage under a fresh key namespaced by prefix. It returns the key.
func storeUploadedImage(deps *AppDeps, r *http.Request, file multipart.File, header *multipart.FileHeader, prefix string) (string, *errs.CustomError) {
	ext := strings.ToLower(path.Ext(header.Filename))
	mimeType, ok := allowedImageExtensions[ext]
	if !ok {
		return "", errs.NewError(errs.ErrFileTypeInvalid)
	}

	key := randx.ImageKey(prefix, header.Filename)

	if err := deps.Storage.Upload(r.Context(), key, mimeType, file); err != nil {
		logx.Error(err, "image upload to storage failed", "key", key)
		return "", errs.NewError(errs.ErrFileStorageFailed)
	}

	return key, nil
}
