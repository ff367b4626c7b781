package astrosched

type Logger interface {
	Debug(interface{}, ...interface{})
	Info(interface{}, ...interface{})
	Warn(interface{}, ...interface{})
	Error(interface{}, ...interface{})
	Fatal(interface{}, ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(interface{}, ...interface{}) {}
func (NopLogger) Info(interface{}, ...interface{})  {}
func (NopLogger) Warn(interface{}, ...interface{})  {}
func (NopLogger) Error(interface{}, ...interface{}) {}
func (NopLogger) Fatal(interface{}, ...interface{}) {}
