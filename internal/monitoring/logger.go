// Package monitoring holds the shared diagnostic logging hook.
package monitoring

import "log"

// Logf is the package-level diagnostic logger used by long-running
// components. It defaults to log.Printf; tests and embedding callers can
// redirect or mute it with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil argument installs a no-op
// logger so call sites never need a nil check.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
