// Package organizer drives a full run: it locks the source root, rebuilds
// the workspace from scratch, enumerates candidate files, and routes each
// one through the resolver and materializer.
//
// Per-file failures are counted in the Report and never abort a run.
// Setup failures (lock held, unsafe workspace, invalid routing) do.
package organizer
