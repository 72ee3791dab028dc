package service_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Babyaovo/Yaouo-sub000/internal/service"
)

const upsertSetting = "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"

func setupSettingsService(t *testing.T) (*service.SettingsService, *sql.DB, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	return service.NewSettingsService(db), db, mockDB
}

func expectSave(mockDB sqlmock.Sqlmock, s *service.Settings) {
	mockDB.ExpectBegin()
	prep := mockDB.ExpectPrepare(regexp.QuoteMeta(upsertSetting))
	prep.ExpectExec().WithArgs("api_key", s.APIKey).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("api_url", s.APIURL).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("base_language", s.BaseLanguage).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("model", s.Model).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("user_avatar", s.UserAvatar).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("user_name", s.UserName).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("user_persona", s.UserPersona).WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectCommit()
}

func TestSettingsService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Get existing settings", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"key", "value"}).
			AddRow("api_url", "https://api.example.com/v1").
			AddRow("api_key", "sk-1").
			AddRow("model", "gpt-4o-mini").
			AddRow("base_language", "English").
			AddRow("user_name", "Sam")
		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(rows)

		settings, err := settingsService.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/v1", settings.APIURL)
		assert.Equal(t, "sk-1", settings.APIKey)
		assert.Equal(t, "gpt-4o-mini", settings.Model)
		assert.Equal(t, "Sam", settings.Profile().Name)
		assert.Equal(t, "English", settings.Profile().BaseLanguage)
		assert.False(t, settings.Credentials().Missing())
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - DB error on get", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		expectedErr := errors.New("db error")
		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnError(expectedErr)

		settings, err := settingsService.Get(ctx)
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), expectedErr.Error())
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSettingsService_InitAndGet(t *testing.T) {
	ctx := context.Background()
	defaults := &service.Settings{
		APIURL:       "https://bootstrap.example.com/v1",
		APIKey:       "sk-boot",
		Model:        "gpt-4o-mini",
		BaseLanguage: "English",
	}

	t.Run("Success - Every key stored, nothing is written", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"key", "value"})
		for _, k := range []string{"api_key", "api_url", "base_language", "model", "user_avatar", "user_name", "user_persona"} {
			rows.AddRow(k, "")
		}
		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(rows)

		settings, err := settingsService.InitAndGet(ctx, defaults)
		require.NoError(t, err)
		assert.Empty(t, settings.APIKey, "a key the user cleared stays cleared")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - Empty table is seeded from bootstrap values", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))
		expectSave(mockDB, defaults)

		settings, err := settingsService.InitAndGet(ctx, defaults)
		require.NoError(t, err)
		assert.Equal(t, defaults, settings)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - Seeding cannot be saved", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))
		mockDB.ExpectBegin().WillReturnError(errors.New("locked"))

		_, err := settingsService.InitAndGet(ctx, defaults)
		assert.ErrorContains(t, err, "failed to save initial settings")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSettingsService_Save(t *testing.T) {
	ctx := context.Background()
	settingsToSave := &service.Settings{
		APIURL:       "https://api.example.com/v1",
		APIKey:       "sk-2",
		Model:        "gpt-4o",
		BaseLanguage: "Chinese",
		UserName:     "Sam",
		UserAvatar:   "me.png",
		UserPersona:  "A night-shift nurse.",
	}

	t.Run("Success - Save valid settings", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		expectSave(mockDB, settingsToSave)

		require.NoError(t, settingsService.Save(ctx, settingsToSave))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - Exec error rolls back", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectBegin()
		prep := mockDB.ExpectPrepare(regexp.QuoteMeta(upsertSetting))
		prep.ExpectExec().WithArgs("api_key", "sk-2").WillReturnError(errors.New("disk I/O error"))
		mockDB.ExpectRollback()

		err := settingsService.Save(ctx, settingsToSave)
		assert.ErrorContains(t, err, "could not save setting api_key")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}
