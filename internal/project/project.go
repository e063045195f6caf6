// Package project persists a planning session as a JSON document so a plan
// can be reloaded, re-exported, or re-run with different settings.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skylane/loadplan/internal/model"
)

// Session ties everything from one planning run together for save/load.
type Session struct {
	Name       string             `json:"name"`
	Aircraft   model.Aircraft     `json:"aircraft"`
	Containers []model.Container  `json:"containers"`
	Settings   model.PlanSettings `json:"settings"`
	Result     *model.PlanResult  `json:"result,omitempty"`
}

// NewSession returns an empty session with default settings.
func NewSession() Session {
	return Session{
		Name:       "Untitled",
		Containers: []model.Container{},
		Settings:   model.DefaultSettings(),
	}
}

// DefaultSessionsDir returns the default directory for storing sessions.
func DefaultSessionsDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "loadplan"), nil
}

// ResolvePath turns a session reference into a concrete file path. A bare
// name resolves under the default sessions directory with a .json extension
// appended when missing; a reference containing a path separator is used as
// given.
func ResolvePath(ref string) (string, error) {
	if strings.ContainsRune(ref, '/') || strings.ContainsRune(ref, os.PathSeparator) {
		return ref, nil
	}
	dir, err := DefaultSessionsDir()
	if err != nil {
		return "", err
	}
	if filepath.Ext(ref) != ".json" {
		ref += ".json"
	}
	return filepath.Join(dir, ref), nil
}

// Save writes the session to a JSON file, creating parent directories as
// needed.
func Save(path string, s Session) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a session from a JSON file.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parse session %s: %w", path, err)
	}
	if s.Name == "" {
		return Session{}, errors.New("session has no name")
	}
	return s, nil
}
