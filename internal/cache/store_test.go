package cache

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s, err := NewStore(t.TempDir(), true, time.Hour)
	require.NoError(t, err)

	payload := json.RawMessage(`[{"display_name":"Berlin"}]`)
	require.NoError(t, s.Set("Berlin", payload))

	got, err := s.Get("  berlin ")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got))
}

func TestStore_Miss(t *testing.T) {
	s, err := NewStore(t.TempDir(), true, time.Hour)
	require.NoError(t, err)

	_, err = s.Get("nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	s, err := NewStore(dir, true, time.Minute, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	require.NoError(t, s.Set("paris", json.RawMessage(`[]`)))

	now = now.Add(2 * time.Minute)
	_, err = s.Get("paris")
	assert.ErrorIs(t, err, ErrExpired)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "expired entry should be removed")
}

func TestStore_InvalidKey(t *testing.T) {
	s, err := NewStore(t.TempDir(), true, time.Hour)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Set(" ", nil), ErrInvalidKey)
	_, err = s.Get("")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestStore_Disabled(t *testing.T) {
	s, err := NewStore("", false, 0)
	require.NoError(t, err)

	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.Set("a", nil), ErrDisabled)
	_, err = s.Get("a")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, s.Clear(), ErrDisabled)
}

func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, true, time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.Set("a", json.RawMessage(`1`)))
	require.NoError(t, s.Set("b", json.RawMessage(`2`)))
	require.NoError(t, s.Clear())

	_, err = s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewStore_RequiresDirectory(t *testing.T) {
	_, err := NewStore("", true, time.Hour)
	assert.Error(t, err)
}
