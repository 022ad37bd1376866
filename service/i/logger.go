package i

// Logger is the minimal leveled logger used across services.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
