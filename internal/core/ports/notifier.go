package ports

// Notifier delivers transient user-facing notices (the toast analogue).
// Implementations must never block the calling operation.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}
