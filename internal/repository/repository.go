package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

// StateStore is the persistence port for the whole application state.
// The state is written as a single JSON blob after every committed change
// and read back once on startup.
type StateStore interface {
	Load(ctx context.Context) (*model.AppState, error)
	Save(ctx context.Context, state *model.AppState) error
}

// stateKey is the key the blob is stored under in every backend.
const stateKey = "app_state"

func encodeState(state *model.AppState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("could not marshal state: %w", err)
	}
	return data, nil
}

// decodeState loads data as-is. There is no schema version: fields with an
// unexpected type are skipped and logged, everything else keeps its value.
func decodeState(data []byte) (*model.AppState, error) {
	state := &model.AppState{}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		slog.Warn("Stored state has incompatible fields, loading as-is", "field", typeErr.Field, "error", err)
	}
	return state, nil
}
