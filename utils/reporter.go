package utils

import "log"

// Reporter receives complaints about requests a test should never make, such
// as a POST to a read-only endpoint. *testing.T satisfies it.
type Reporter interface {
	Errorf(format string, args ...any)
}

// LogReporter is the Reporter used when no test is attached.
type LogReporter struct{}

func (LogReporter) Errorf(format string, args ...any) {
	log.Printf("mock gateway: "+format, args...)
}
