package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rpath/internal/render"
	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/registry"
)

// ErrSnapshotNotFound is returned when a snapshot id does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrTooManyVertices is returned by SaveGraph when the walk exceeds the
// store's vertex limit.
var ErrTooManyVertices = errors.New("graph exceeds vertex limit")

// Snapshot describes a stored graph. A Snapshot is also the graph value
// SnapshotAdapter evaluates expressions on.
type Snapshot struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	Label       string `json:"label"`
	Adapter     string `json:"adapter"`
	VertexCount int64  `json:"vertex_count"`
}

// SaveGraph walks graph through a depth first, starting at a.Root(graph),
// and stores every visited vertex. Ids are assigned in visit order, so the
// root is vertex 1. A vertex reachable along several paths is stored once
// per path.
//
// Fails with ErrTooManyVertices when the walk exceeds the store's limit
// (see WithMaxVertices); nothing is stored in that case.
func (s *Store) SaveGraph(ctx context.Context, graph any, a adapter.Adapter, label string) (Snapshot, error) {
	root := a.Root(graph)
	if root == nil {
		return Snapshot{}, fmt.Errorf("save graph: adapter %s has no root for %T", registry.DefaultID(a), graph)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("save graph: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM snapshots`).Scan(&seq); err != nil {
		return Snapshot{}, fmt.Errorf("save graph: next seq: %w", err)
	}

	snap := Snapshot{
		ID:      s.ids.Generate(),
		Seq:     seq,
		Label:   label,
		Adapter: string(registry.DefaultID(a)),
	}

	// The snapshot row goes first so vertex foreign keys resolve; the
	// count is filled in once the walk is done.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, seq, label, adapter, vertex_count)
		VALUES (?, ?, ?, ?, 0)
	`, snap.ID, snap.Seq, snap.Label, snap.Adapter); err != nil {
		return Snapshot{}, fmt.Errorf("save graph: insert snapshot: %w", err)
	}

	w := &walker{
		ctx:     ctx,
		tx:      tx,
		adapter: a,
		snap:    snap.ID,
		limit:   s.maxVertices,
	}
	if err := w.walk(root); err != nil {
		return Snapshot{}, fmt.Errorf("save graph: %w", err)
	}
	snap.VertexCount = w.next

	if _, err := tx.ExecContext(ctx, `
		UPDATE snapshots SET vertex_count = ? WHERE id = ?
	`, snap.VertexCount, snap.ID); err != nil {
		return Snapshot{}, fmt.Errorf("save graph: update count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("save graph: commit: %w", err)
	}
	return snap, nil
}

type walker struct {
	ctx     context.Context
	tx      *sql.Tx
	adapter adapter.Adapter
	snap    string
	limit   int
	next    int64
}

type pending struct {
	vertex   adapter.Vertex
	parent   int64
	position int
}

func (w *walker) walk(root adapter.Vertex) error {
	lister, _ := w.adapter.(adapter.AttributeLister)
	stack := []pending{{vertex: root}}

	for len(stack) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		w.next++
		if w.next > int64(w.limit) {
			return fmt.Errorf("%w (%d)", ErrTooManyVertices, w.limit)
		}
		id := w.next

		if err := w.insertVertex(id, p); err != nil {
			return err
		}
		if lister != nil {
			if err := w.insertAttributes(lister, id, p.vertex); err != nil {
				return err
			}
		}

		adjacent, err := w.adapter.Adjacent(p.vertex)
		if err != nil {
			return fmt.Errorf("adjacent of vertex %d: %w", id, err)
		}
		// Push in reverse so the first adjacent vertex is visited next.
		for i := len(adjacent) - 1; i >= 0; i-- {
			stack = append(stack, pending{vertex: adjacent[i], parent: id, position: i})
		}
	}
	return nil
}

func (w *walker) insertVertex(id int64, p pending) error {
	name, err := w.adapter.Name(p.vertex)
	if err != nil {
		return fmt.Errorf("name of vertex %d: %w", id, err)
	}

	content, err := w.adapter.Content(p.vertex)
	if err != nil {
		return fmt.Errorf("content of vertex %d: %w", id, err)
	}
	var contentJSON sql.NullString
	if content != nil {
		data, err := render.MarshalCanonical(content)
		if err != nil {
			return fmt.Errorf("content of vertex %d: %w", id, err)
		}
		contentJSON = sql.NullString{String: string(data), Valid: true}
	}

	var parent sql.NullInt64
	if p.parent != 0 {
		parent = sql.NullInt64{Int64: p.parent, Valid: true}
	}

	_, err = w.tx.ExecContext(w.ctx, `
		INSERT INTO vertices (snapshot_id, id, parent_id, position, name, content)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.snap, id, parent, p.position, name, contentJSON)
	if err != nil {
		return fmt.Errorf("insert vertex %d: %w", id, err)
	}
	return nil
}

func (w *walker) insertAttributes(lister adapter.AttributeLister, id int64, v adapter.Vertex) error {
	attrs, err := lister.Attributes(v)
	if err != nil {
		return fmt.Errorf("attributes of vertex %d: %w", id, err)
	}

	for _, name := range render.SortedKeys(attrs) {
		value := attrs[name]
		if value == nil {
			continue
		}
		data, err := render.MarshalCanonical(value)
		if err != nil {
			return fmt.Errorf("attribute %q of vertex %d: %w", name, id, err)
		}
		if _, err := w.tx.ExecContext(w.ctx, `
			INSERT INTO attributes (snapshot_id, vertex_id, name, value)
			VALUES (?, ?, ?, ?)
		`, w.snap, id, name, string(data)); err != nil {
			return fmt.Errorf("insert attribute %q of vertex %d: %w", name, id, err)
		}
	}
	return nil
}

// Snapshots returns all snapshots ordered by seq.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, label, adapter, vertex_count
		FROM snapshots
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// Snapshot returns the snapshot with the given id, or ErrSnapshotNotFound.
func (s *Store) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, label, adapter, vertex_count
		FROM snapshots
		WHERE id = ?
	`, id)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return snap, err
}

// DeleteSnapshot removes a snapshot with its vertices and attributes.
// Returns ErrSnapshotNotFound if it does not exist.
func (s *Store) DeleteSnapshot(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete snapshot: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attributes WHERE snapshot_id = ?`, id); err != nil {
		return fmt.Errorf("delete snapshot attributes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM vertices WHERE snapshot_id = ?`, id); err != nil {
		return fmt.Errorf("delete snapshot vertices: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.Seq, &snap.Label, &snap.Adapter, &snap.VertexCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, err
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}
	return snap, nil
}
