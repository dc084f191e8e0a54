// internal/resolve/errors.go
package resolve

// Messages carried by degraded snapshots. None of these are fatal:
// every failure degrades to the next strategy, and total pipeline
// failure degrades to a default disconnected snapshot. No error ever
// crosses Resolve's boundary as a return value.
const (
	msgSourceDisabled   = "source disabled"
	msgNotConnected     = "not connected"
	msgPermissionDenied = "permission denied"
)
