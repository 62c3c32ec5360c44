// Package persistence implements C4: atomic, one-file-per-user storage of a
// UserBN's network structure, evidence, and observations.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chronosuggest/engine/internal/bayes/application"
)

// ErrNoStoredBN is returned by Load whenever no usable prior state exists:
// the file is missing, unreadable as JSON, or its user_id does not match.
// Spec.md §4.4 treats all three as the same outcome, never a partial restore.
var ErrNoStoredBN = errors.New("persistence: no stored BN for user")

type persistedCPT struct {
	NodeName     string                        `json:"node_name"`
	Table        map[string]map[string]float64 `json:"table"`
	IsFunctional bool                          `json:"is_functional"`
}

type persistedNode struct {
	States  []string     `json:"states"`
	Parents []string     `json:"parents"`
	CPT     persistedCPT `json:"cpt"`
}

// persistedNetworkStructure mirrors spec.md §6's file-format contract:
// nodes keyed by name, evidence nested alongside them rather than as a
// top-level sibling of network_structure.
type persistedNetworkStructure struct {
	Nodes    map[string]persistedNode `json:"nodes"`
	Evidence map[string]string        `json:"evidence"`
}

type persistedMetadata struct {
	NumObservations int  `json:"num_observations"`
	IsInitialized   bool `json:"is_initialized"`
}

type persistedPayload struct {
	UserID           string                    `json:"user_id"`
	NetworkStructure persistedNetworkStructure `json:"network_structure"`
	Observations     []application.Observation `json:"observations"`
	Metadata         persistedMetadata         `json:"metadata"`
}

// FileRepository persists each user's BN to <dir>/<user_id>.json.
type FileRepository struct {
	dir string
}

// NewFileRepository constructs a repository rooted at dir. dir is created
// (including parents) if it does not already exist.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persistence: create dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) pathFor(userID string) string {
	return filepath.Join(r.dir, userID+".json")
}

// Save serializes ub and atomically replaces its file: write to a sibling
// temp file, fsync, then rename over the destination. A crash mid-write
// never leaves a partially-written destination file.
func (r *FileRepository) Save(ub *application.UserBN) error {
	payload := persistedPayload{
		UserID:       ub.UserID,
		Observations: ub.Observations,
		Metadata: persistedMetadata{
			NumObservations: len(ub.Observations),
			IsInitialized:   ub.IsTrained(),
		},
	}
	payload.NetworkStructure.Evidence = ub.Evidence
	if ub.Net != nil {
		payload.NetworkStructure.Nodes = make(map[string]persistedNode, len(ub.Net.Nodes()))
		for _, n := range ub.Net.Nodes() {
			payload.NetworkStructure.Nodes[n.Name] = persistedNode{
				States:  n.States,
				Parents: n.Parents,
				CPT: persistedCPT{
					NodeName:     n.Name,
					Table:        n.CPT.Table(),
					IsFunctional: n.CPT.IsFunctional(),
				},
			}
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("persistence: marshal: %w", err)
	}

	dest := r.pathFor(ub.UserID)
	tmp, err := os.CreateTemp(r.dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("persistence: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("persistence: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("persistence: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persistence: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("persistence: rename into place: %w", err)
	}
	return nil
}

// Load reads a user's BN back from disk, rebuilding it via
// application.RehydrateUserBN (network structure is reconstructed
// deterministically; only evidence and observations are read from disk).
// Any read/parse/mismatch failure yields ErrNoStoredBN.
func (r *FileRepository) Load(userID string) (*application.UserBN, error) {
	data, err := os.ReadFile(r.pathFor(userID))
	if err != nil {
		return nil, ErrNoStoredBN
	}
	var payload persistedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, ErrNoStoredBN
	}
	if payload.UserID != userID {
		return nil, ErrNoStoredBN
	}
	return application.RehydrateUserBN(userID, payload.NetworkStructure.Evidence, payload.Observations, r), nil
}
