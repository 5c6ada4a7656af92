// Package export writes the board to files and reads snapshots back.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"WormBoard/internal/state"
)

// snapshot is the on-disk form of a board. Only positions are kept; IDs are
// assigned afresh when a snapshot is loaded.
type snapshot struct {
	Version int           `json:"version"`
	Points  []state.Point `json:"points"`
}

const snapshotVersion = 1

// WriteJSON saves points in render order.
func WriteJSON(w io.Writer, points []state.OrderedPoint) error {
	snap := snapshot{Version: snapshotVersion, Points: make([]state.Point, len(points))}
	for i, p := range points {
		snap.Points[i] = p.Point
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write snapshot: %w", err)
	}
	return nil
}

// ReadJSON loads a snapshot written by WriteJSON. A bare array of points is
// accepted too, which is how precomputed seed clouds are usually stored.
func ReadJSON(r io.Reader) ([]state.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read snapshot: %w", err)
	}

	var bare []state.Point
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	if snap.Version > snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, snapshotVersion)
	}
	return snap.Points, nil
}
