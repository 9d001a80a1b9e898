package api

// Package api implements the HTTP client for the dashboard backend: the
// startup ping probe, the tracked coin list, symbol search, and add/remove
// mutations. Failures are classified into RequestError kinds so callers can
// pick a precise user-facing message without inspecting transport errors.
