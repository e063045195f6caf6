package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/loadplan/internal/model"
)

func TestNewSession(t *testing.T) {
	s := NewSession()
	assert.Equal(t, "Untitled", s.Name)
	assert.NotNil(t, s.Containers)
	assert.Equal(t, model.StrategyFirstFit, s.Settings.Strategy)
	assert.Nil(t, s.Result)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := NewSession()
	s.Name = "flight-123"
	s.Aircraft = model.Aircraft{
		Model:    "B747-400F",
		MTW:      396890,
		MainDeck: model.DeckGeometry{Slots: 30, RowLength: 8, NoseSlots: 1, TailSlots: 1},
	}
	s.Containers = []model.Container{
		{ID: "AKE1", Weight: 100, Restriction: model.DeckLower},
		{ID: "PMC7", Weight: 2500, Restriction: model.DeckMain, AllowSpecial: true},
	}
	s.Result = &model.PlanResult{
		ID:          "abc123",
		TotalWeight: 2600,
		TotalMoment: 52000,
	}

	path := filepath.Join(t.TempDir(), "sessions", "flight-123.json")
	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Name, loaded.Name)
	assert.Equal(t, s.Aircraft, loaded.Aircraft)
	assert.Equal(t, s.Containers, loaded.Containers)
	require.NotNil(t, loaded.Result)
	assert.Equal(t, "abc123", loaded.Result.ID)
}

func TestSave_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "s.json")
	require.NoError(t, Save(path, NewSession()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := ResolvePath("flight-123")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "loadplan", "flight-123.json"), path)

	path, err = ResolvePath("flight-123.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "loadplan", "flight-123.json"), path)
}

func TestResolvePath_ExplicitPathUsedAsGiven(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "elsewhere", "s.json")
	path, err := ResolvePath(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
}

func TestResolvePath_SaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s := NewSession()
	s.Name = "flight-123"
	path, err := ResolvePath("flight-123")
	require.NoError(t, err)
	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "flight-123", loaded.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsNamelessSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": ""}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}
