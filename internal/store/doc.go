// Package store keeps snapshots of rpath graphs in SQLite.
//
// SaveGraph walks a graph through its adapter and records what the walk
// saw: vertex names, content, adjacency order, and attributes when the
// adapter implements adapter.AttributeLister. SnapshotAdapter answers the
// adapter contract from those tables, so an expression that works on the
// live graph works on its snapshot.
//
// Vertex ids follow depth-first visit order with the root at 1. Snapshots
// are ordered by seq, a counter, and never by wall time. Values are stored
// as canonical JSON.
//
// The database runs in WAL mode with foreign keys on, so deleting a
// snapshot row removes its vertices and attributes as well.
package store
