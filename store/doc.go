// Package store keeps an archive of finished runs in a local bbolt file.
//
// Each Record carries the run ID, the scenario it came from, the flow summary
// and the full JSON report, so a run can be listed and shown again without
// being recomputed. Records are keyed by run ID and indexed by creation time.
//
// A Store holds the file lock while open; callers must Close it.
package store
