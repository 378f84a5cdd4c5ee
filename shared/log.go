package shared

// Logger is the logging interface library packages write through. The
// default is NoopLogger; binaries install an adapter (see cmd/packcli).
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

type NoopLogger struct{}

func (NoopLogger) Info(string, ...any)  {}
func (NoopLogger) Debug(string, ...any) {}
func (NoopLogger) Error(string, ...any) {}
