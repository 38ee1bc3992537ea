package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/rpath/pkg/adapter"
)

// SnapshotVertex identifies a stored vertex.
type SnapshotVertex struct {
	Snapshot string
	ID       int64
}

// SnapshotAdapter evaluates expressions on stored snapshots. The graph is a
// Snapshot returned by the same Store; vertices are SnapshotVertex values.
//
// Stored content and attribute values come back as decoded JSON: strings,
// bools, int64 for integral numbers, float64 otherwise, []any and
// map[string]any.
type SnapshotAdapter struct {
	store *Store
}

// NewSnapshotAdapter creates an adapter reading from s.
func NewSnapshotAdapter(s *Store) *SnapshotAdapter {
	return &SnapshotAdapter{store: s}
}

// AdaptsTo reports whether graph is a Snapshot.
func (a *SnapshotAdapter) AdaptsTo(graph any) bool {
	_, ok := graph.(Snapshot)
	return ok
}

// Root returns vertex 1 of the snapshot.
func (a *SnapshotAdapter) Root(graph any) adapter.Vertex {
	snap, ok := graph.(Snapshot)
	if !ok || snap.VertexCount == 0 {
		return nil
	}
	return SnapshotVertex{Snapshot: snap.ID, ID: 1}
}

func (a *SnapshotAdapter) Name(v adapter.Vertex) (string, error) {
	sv, err := snapshotVertexOf(v)
	if err != nil {
		return "", err
	}

	var name string
	err = a.store.db.QueryRowContext(context.Background(), `
		SELECT name FROM vertices WHERE snapshot_id = ? AND id = ?
	`, sv.Snapshot, sv.ID).Scan(&name)
	if err != nil {
		return "", fmt.Errorf("snapshot vertex %d name: %w", sv.ID, err)
	}
	return name, nil
}

func (a *SnapshotAdapter) Adjacent(v adapter.Vertex) ([]adapter.Vertex, error) {
	sv, err := snapshotVertexOf(v)
	if err != nil {
		return nil, err
	}

	rows, err := a.store.db.QueryContext(context.Background(), `
		SELECT id FROM vertices
		WHERE snapshot_id = ? AND parent_id = ?
		ORDER BY position ASC, id ASC
	`, sv.Snapshot, sv.ID)
	if err != nil {
		return nil, fmt.Errorf("query adjacent of vertex %d: %w", sv.ID, err)
	}
	defer rows.Close()

	out := []adapter.Vertex{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan adjacent of vertex %d: %w", sv.ID, err)
		}
		out = append(out, SnapshotVertex{Snapshot: sv.Snapshot, ID: id})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adjacent of vertex %d: %w", sv.ID, err)
	}
	return out, nil
}

func (a *SnapshotAdapter) Attribute(v adapter.Vertex, name string) (any, error) {
	sv, err := snapshotVertexOf(v)
	if err != nil {
		return nil, err
	}

	var value string
	err = a.store.db.QueryRowContext(context.Background(), `
		SELECT value FROM attributes
		WHERE snapshot_id = ? AND vertex_id = ? AND name = ?
	`, sv.Snapshot, sv.ID, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot vertex %d attribute %q: %w", sv.ID, name, err)
	}
	return decodeJSON(value)
}

// Attributes returns every stored attribute of the vertex.
func (a *SnapshotAdapter) Attributes(v adapter.Vertex) (map[string]any, error) {
	sv, err := snapshotVertexOf(v)
	if err != nil {
		return nil, err
	}

	rows, err := a.store.db.QueryContext(context.Background(), `
		SELECT name, value FROM attributes
		WHERE snapshot_id = ? AND vertex_id = ?
		ORDER BY name COLLATE BINARY ASC
	`, sv.Snapshot, sv.ID)
	if err != nil {
		return nil, fmt.Errorf("query attributes of vertex %d: %w", sv.ID, err)
	}
	defer rows.Close()

	out := map[string]any{}
	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("scan attributes of vertex %d: %w", sv.ID, err)
		}
		value, err := decodeJSON(raw)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attributes of vertex %d: %w", sv.ID, err)
	}
	return out, nil
}

func (a *SnapshotAdapter) Content(v adapter.Vertex) (any, error) {
	sv, err := snapshotVertexOf(v)
	if err != nil {
		return nil, err
	}

	var content sql.NullString
	err = a.store.db.QueryRowContext(context.Background(), `
		SELECT content FROM vertices WHERE snapshot_id = ? AND id = ?
	`, sv.Snapshot, sv.ID).Scan(&content)
	if err != nil {
		return nil, fmt.Errorf("snapshot vertex %d content: %w", sv.ID, err)
	}
	if !content.Valid {
		return nil, nil
	}
	return decodeJSON(content.String)
}

func snapshotVertexOf(v adapter.Vertex) (SnapshotVertex, error) {
	sv, ok := v.(SnapshotVertex)
	if !ok {
		return SnapshotVertex{}, fmt.Errorf("snapshot: vertex is %T, want SnapshotVertex", v)
	}
	return sv, nil
}

// decodeJSON decodes a stored value, keeping integral numbers as int64.
func decodeJSON(raw string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode stored value: %w", err)
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case []any:
		for i := range val {
			val[i] = normalizeNumbers(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = normalizeNumbers(val[k])
		}
		return val
	}
	return v
}
