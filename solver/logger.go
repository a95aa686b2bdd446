package solver

import "github.com/sirupsen/logrus"

// Logger is called on the notable search events spec.md §5/§9 calls out:
// restarts and reduceDB passes. It is a function
// field rather than an interface so callers can plug in a closure (or
// nil, the default, to disable logging entirely) without implementing a
// type.
type Logger func(event string, fields map[string]interface{})

// NewLogrusLogger adapts a *logrus.Logger to the Logger signature, the
// way this package's events are reported when a caller wants structured
// logging instead of silence.
func NewLogrusLogger(l *logrus.Logger) Logger {
	return func(event string, fields map[string]interface{}) {
		l.WithFields(logrus.Fields(fields)).Debug(event)
	}
}

func (s *Solver) logEvent(event string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger(event, fields)
	}
}
