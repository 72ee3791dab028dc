package repository

import "errors"

// ErrCorruptState is returned when the stored state blob is not valid JSON.
// Blobs that are valid JSON but structurally different still load; see decodeState.
var ErrCorruptState = errors.New("repository: stored state is not valid json")
