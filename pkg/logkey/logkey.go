package logkey

// Shared keys for structured log attributes.
const (
	TraceID   = "trace_id"
	SessionID = "session_id"
	Plan      = "plan"
	ErrorKey  = "error"
)
