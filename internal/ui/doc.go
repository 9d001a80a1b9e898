package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the tracker service and renders the coin table,
// search candidates, notifications, and settings. All UI strings are localized
// via Localization.
