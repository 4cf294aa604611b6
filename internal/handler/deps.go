package handler

import (
	"cyberlink/internal/app/chat"
	"cyberlink/internal/app/db"
	"cyberlink/internal/app/storage"
	"cyberlink/internal/configs"
	"cyberlink/internal/pkg/mail"
)

// AppDeps bundles the shared collaborators injected into every handler.
type AppDeps struct {
	Config   *configs.AppConfig
	DB       *db.Store
	Storage  storage.Service
	Registry *chat.Registry
	Relay    *chat.Relay
	Mailer   *mail.Mailer
}
