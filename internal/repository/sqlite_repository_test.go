package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

func TestSQLiteStateStore_Load(t *testing.T) {
	ctx := context.Background()
	selectQuery := regexp.QuoteMeta("SELECT value FROM app_state WHERE key = ?")

	t.Run("Success - existing blob", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		blob := `{"conversations":[{"id":"c1","characterId":"ch1","messages":[{"id":"m1","role":"user","content":"hi","timestamp":5}],"pendingMessages":["draft"]}]}`
		mockDB.ExpectQuery(selectQuery).WithArgs("app_state").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(blob))

		state, err := NewSQLiteStateStore(db).Load(ctx)
		require.NoError(t, err)
		require.Len(t, state.Conversations, 1)
		assert.Equal(t, "hi", state.Conversations[0].Messages[0].Content)
		assert.Equal(t, []string{"draft"}, state.Conversations[0].PendingMessages)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - nothing stored yet", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery(selectQuery).WithArgs("app_state").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		state, err := NewSQLiteStateStore(db).Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, state.Conversations)
	})

	t.Run("Success - incompatible fields load as-is", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		blob := `{"conversations":[{"id":"c1","lastTime":"yesterday","name":"Mika"}],"characters":[{"id":"ch1","name":"Mika"}]}`
		mockDB.ExpectQuery(selectQuery).WithArgs("app_state").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(blob))

		state, err := NewSQLiteStateStore(db).Load(ctx)
		require.NoError(t, err)
		require.Len(t, state.Conversations, 1)
		assert.Equal(t, "Mika", state.Conversations[0].Name)
		assert.Zero(t, state.Conversations[0].LastTime)
		assert.Len(t, state.Characters, 1)
	})

	t.Run("Failure - broken json", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery(selectQuery).WithArgs("app_state").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"conversations":`))

		_, err = NewSQLiteStateStore(db).Load(ctx)
		assert.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("Failure - query error", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery(selectQuery).WillReturnError(errors.New("db down"))

		_, err = NewSQLiteStateStore(db).Load(ctx)
		assert.ErrorContains(t, err, "could not read state")
	})
}

func TestSQLiteStateStore_Save(t *testing.T) {
	ctx := context.Background()
	state := &model.AppState{Conversations: []model.Conversation{{ID: "c1", Name: "Mika"}}}

	t.Run("Success", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mockDB.ExpectExec("INSERT INTO app_state").
			WithArgs("app_state", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, NewSQLiteStateStore(db).Save(ctx, state))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mockDB.ExpectExec("INSERT INTO app_state").WillReturnError(errors.New("disk full"))

		err = NewSQLiteStateStore(db).Save(ctx, state)
		assert.ErrorContains(t, err, "could not write state")
	})
}
