package model

// ConnState represents the backend connectivity state of the dashboard
type ConnState string

const (
	// ConnStateInitializing means the startup probe has not settled yet
	ConnStateInitializing ConnState = "Initializing"

	// ConnStateConnected means the probe succeeded and the first fetch is underway
	ConnStateConnected ConnState = "Connected"

	// ConnStatePolling means the dashboard refreshes on the poll timer
	ConnStatePolling ConnState = "Polling"

	// ConnStateDisconnected means the startup probe failed
	ConnStateDisconnected ConnState = "Disconnected"
)

// String returns the string representation of ConnState
func (cs ConnState) String() string {
	return string(cs)
}

// IsOnline returns true if the backend answered the startup probe
func (cs ConnState) IsOnline() bool {
	return cs == ConnStateConnected || cs == ConnStatePolling
}
