package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	lastMissionFile = "last_mission.json"
)

// MissionRecord is the persisted outcome of the last CLI mission.
type MissionRecord struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	Plan       []string  `json:"plan,omitempty"`
	Report     string    `json:"report,omitempty"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// LoadLastMission reads .pilot/last_mission.json. It returns nil, nil when
// no mission has been recorded.
func (m *Manager) LoadLastMission(overrideDir string) (*MissionRecord, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, lastMissionFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading last mission: %w", err)
	}

	rec := &MissionRecord{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("parsing last mission: %w", err)
	}
	return rec, nil
}

// SaveLastMission overwrites .pilot/last_mission.json, creating ~/.pilot/ if
// no directory exists yet.
func (m *Manager) SaveLastMission(rec *MissionRecord, overrideDir string) error {
	if rec == nil {
		return errors.New("cannot save nil mission record")
	}

	dir, err := m.Ensure(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling last mission: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, lastMissionFile), data, 0o600); err != nil {
		return fmt.Errorf("writing last mission: %w", err)
	}
	return nil
}

// ClearLastMission removes the record. A missing record is not an error.
func (m *Manager) ClearLastMission(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil || dir == "" {
		return err
	}

	if err := os.Remove(filepath.Join(dir, lastMissionFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing last mission: %w", err)
	}
	return nil
}
