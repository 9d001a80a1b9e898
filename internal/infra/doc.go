package infra

// Package infra provides small timing utilities shared across the app: a
// fixed-interval scheduler wrapping robfig/cron for the poll loop, and a
// debouncer that collapses keystroke bursts into a single deferred call.
