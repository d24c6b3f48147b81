package settings

import (
	"context"
	"log/slog"
)

// RepositoryPort abstracts config persistence for the service.
type RepositoryPort interface {
	Load(ctx context.Context) (DbConfig, error)
	Save(ctx context.Context, cfg DbConfig) error
}

// Service owns the connection panel state.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Load returns the current config with the password stripped.
func (s *Service) Load(ctx context.Context) (DbConfig, error) {
	cfg, err := s.repo.Load(ctx)
	if err != nil {
		return DbConfig{}, err
	}
	return cfg.Redacted(), nil
}

// Routing returns the config with secrets intact, for internal consumers.
func (s *Service) Routing(ctx context.Context) (DbConfig, error) {
	return s.repo.Load(ctx)
}

// Save validates and persists the config. Saving marks the connection as
// established; there is no real connectivity probe behind the panel. A blank
// incoming password keeps the stored one.
func (s *Service) Save(ctx context.Context, cfg DbConfig) (DbConfig, error) {
	if err := cfg.Validate(); err != nil {
		return DbConfig{}, err
	}
	if cfg.Password == "" {
		current, err := s.repo.Load(ctx)
		if err != nil {
			return DbConfig{}, err
		}
		cfg.Password = current.Password
	}
	cfg.Connected = true
	if err := s.repo.Save(ctx, cfg); err != nil {
		return DbConfig{}, err
	}
	s.logger.Info("settings saved",
		slog.String("engine", string(cfg.Type)),
		slog.String("mode", string(cfg.ConnectionMode)))
	return cfg.Redacted(), nil
}
