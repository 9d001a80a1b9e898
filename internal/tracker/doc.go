package tracker

// Package tracker owns the dashboard state machine: the startup connectivity
// probe, the repeating poll loop, debounced search, and add/remove flows.
// State lives behind a mutex and is pushed to the UI as immutable snapshots
// through a single update callback.
