package service

import (
	"log/slog"

	"github.com/loganlanou/ciber-client/internal/api"
	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/demo"
	"github.com/loganlanou/ciber-client/internal/session"
	"github.com/loganlanou/ciber-client/storage"
)

type Service struct {
	storage *storage.Storage
	config  *Config

	Sessions   *session.Manager
	Auth       *auth.Decorator
	API        *api.Client
	Projects   *demo.ProjectStore
	Advisories *demo.AdvisoryBoard
}

// New wires the clients over store. A nil store runs without persistent
// storage: every caller is anonymous and nothing is saved.
func New(config *Config, store *storage.Storage) *Service {
	var kv session.Store
	if store != nil {
		kv = store
	} else {
		slog.Warn("persistent storage unavailable, sessions will not be saved")
	}
	sessions := session.NewManager(kv)

	client := api.NewClient(api.Config{
		BaseURL: config.BaseURL,
		Timeout: config.APITimeout,
	}, sessions)

	slog.Debug("service initialized", "api", client.GetBaseURL(), "environment", config.Environment)

	return &Service{
		storage:    store,
		config:     config,
		Sessions:   sessions,
		Auth:       auth.NewDecorator(sessions),
		API:        client,
		Projects:   demo.NewProjectStore(sessions),
		Advisories: demo.NewAdvisoryBoard(sessions),
	}
}

// Open opens the database at config.DBPath and builds a Service over it.
// When the database cannot be opened the Service runs without storage.
func Open(config *Config) *Service {
	store, err := storage.New(config.DBPath)
	if err != nil {
		slog.Error("failed to open storage", "path", config.DBPath, "error", err)
		return New(config, nil)
	}
	return New(config, store)
}

func (s *Service) Config() *Config {
	return s.config
}

func (s *Service) Close() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Close()
}
