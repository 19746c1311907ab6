package metrics

const (
	// LabelMethod is the Prometheus label name for HTTP method.
	LabelMethod = "method"

	// LabelStatusCode is the Prometheus label name for HTTP status codes.
	LabelStatusCode = "code"

	// LabelStatus is the Prometheus label name for the outcome of an
	// operation: "success" or "error".
	LabelStatus = "status"

	// LabelOperation is the Prometheus label name for a duration
	// operation such as "add" or "mul".
	LabelOperation = "operation"

	// LabelMode is the Prometheus label name for an arithmetic mode:
	// "checked", "saturating" or "panic".
	LabelMode = "mode"
)

// Values of LabelStatus.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
