package model

// Package model defines domain data structures used across the app: tracked
// coins, search candidates, and connectivity state enums. Structures are
// designed for direct binding in the UI and explicit state transitions.
