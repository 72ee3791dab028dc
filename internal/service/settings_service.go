package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Babyaovo/Yaouo-sub000/internal/llm"
	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

// Settings holds the application-wide settings stored in the settings table.
type Settings struct {
	APIURL       string `json:"apiUrl" validate:"omitempty,url"`
	APIKey       string `json:"apiKey"`
	Model        string `json:"model" validate:"required"`
	BaseLanguage string `json:"baseLanguage" validate:"required"`
	UserName     string `json:"userName"`
	UserAvatar   string `json:"userAvatar,omitempty"`
	UserPersona  string `json:"userPersona,omitempty"`
}

// Credentials returns the completion endpoint credentials.
func (s *Settings) Credentials() llm.Credentials {
	return llm.Credentials{BaseURL: s.APIURL, APIKey: s.APIKey}
}

// Profile returns the user view handed to the prompt composer.
func (s *Settings) Profile() model.UserProfile {
	return model.UserProfile{
		Name:         s.UserName,
		Avatar:       s.UserAvatar,
		Persona:      s.UserPersona,
		BaseLanguage: s.BaseLanguage,
	}
}

// SettingsProvider is the narrow read view the engine and summarizer depend on.
type SettingsProvider interface {
	Get(ctx context.Context) (*Settings, error)
}

const (
	keyAPIURL       = "api_url"
	keyAPIKey       = "api_key"
	keyModel        = "model"
	keyBaseLanguage = "base_language"
	keyUserName     = "user_name"
	keyUserAvatar   = "user_avatar"
	keyUserPersona  = "user_persona"
)

type SettingsService struct {
	db *sql.DB
}

func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db}
}

// InitAndGet returns the stored settings. Keys that have never been written are
// filled from defaults and saved once; keys the user cleared stay cleared.
func (s *SettingsService) InitAndGet(ctx context.Context, defaults *Settings) (*Settings, error) {
	values, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	seeded := false
	for key, value := range toMap(defaults) {
		if _, ok := values[key]; !ok {
			values[key] = value
			seeded = true
		}
	}

	settings := fromMap(values)
	if seeded {
		slog.Info("Seeding missing settings from bootstrap configuration.")
		if err := s.Save(ctx, settings); err != nil {
			return nil, fmt.Errorf("failed to save initial settings: %w", err)
		}
	}
	return settings, nil
}

// Get retrieves the current settings.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	values, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return fromMap(values), nil
}

// Save writes every key in one transaction.
func (s *SettingsService) Save(ctx context.Context, settings *Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return fmt.Errorf("could not prepare settings statement: %w", err)
	}
	defer stmt.Close()

	values := toMap(settings)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if _, err := stmt.ExecContext(ctx, k, values[k]); err != nil {
			return fmt.Errorf("could not save setting %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (s *SettingsService) load(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("could not query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("could not scan setting: %w", err)
		}
		values[k] = v
	}
	return values, rows.Err()
}

func toMap(s *Settings) map[string]string {
	return map[string]string{
		keyAPIURL:       s.APIURL,
		keyAPIKey:       s.APIKey,
		keyModel:        s.Model,
		keyBaseLanguage: s.BaseLanguage,
		keyUserName:     s.UserName,
		keyUserAvatar:   s.UserAvatar,
		keyUserPersona:  s.UserPersona,
	}
}

func fromMap(values map[string]string) *Settings {
	return &Settings{
		APIURL:       values[keyAPIURL],
		APIKey:       values[keyAPIKey],
		Model:        values[keyModel],
		BaseLanguage: values[keyBaseLanguage],
		UserName:     values[keyUserName],
		UserAvatar:   values[keyUserAvatar],
		UserPersona:  values[keyUserPersona],
	}
}
