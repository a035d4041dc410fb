package storage

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// SnapshotVersion is the current blob layout version. Blobs carrying a
// different version are discarded on load rather than misread.
const SnapshotVersion = 1

type envelope struct {
	State   *model.AppState `json:"state"`
	Version int             `json:"version"`
}

// Codec serializes the full store state under a single key.
type Codec struct {
	kv     KV
	key    string
	logger zerolog.Logger
}

func NewCodec(kv KV, key string, logger zerolog.Logger) *Codec {
	return &Codec{kv: kv, key: key, logger: logger}
}

// Save writes the snapshot. Callers treat failure as non-fatal; the error
// is returned so it can be logged and observed.
func (c *Codec) Save(state *model.AppState) error {
	raw, err := json.Marshal(envelope{State: state, Version: SnapshotVersion})
	if err != nil {
		return errs.Wrap(err, "marshal snapshot")
	}
	return c.kv.Set(c.key, raw)
}

// Load hydrates the last snapshot. Returns (nil, false) when the blob is
// absent, unreadable, malformed, or written by a different version; the
// caller falls back to seed data.
func (c *Codec) Load() (*model.AppState, bool) {
	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", c.key).Msg("snapshot read failed, using defaults")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn().Err(err).Str("key", c.key).Msg("snapshot corrupt, using defaults")
		return nil, false
	}
	if env.Version != SnapshotVersion || env.State == nil {
		c.logger.Warn().
			Int("found", env.Version).
			Int("want", SnapshotVersion).
			Msg("snapshot version mismatch, discarding")
		return nil, false
	}
	return env.State, true
}

// Clear removes the persisted snapshot.
func (c *Codec) Clear() error {
	return c.kv.Remove(c.key)
}
