package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType is the standardized structured logging key for machine-readable event names.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator remediation hints.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldErrorCode is the standardized structured logging key for backend error codes.
	FieldErrorCode = "error_code"
	// FieldSessionHandle is the standardized structured logging key for backend connection handles.
	FieldSessionHandle = "session_handle"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldDeviceKind is the standardized structured logging key for audio device kinds.
	FieldDeviceKind = "device_kind"
)
