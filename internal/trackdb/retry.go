package trackdb

import (
	"strings"
	"time"
)

const (
	busyMaxRetries = 5
	busyBaseDelay  = 10 * time.Millisecond
)

// isSQLiteBusy reports whether err is a transient SQLITE_BUSY / locked error
// worth retrying.
func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// retryOnBusy runs fn, retrying with linear backoff while it returns a busy
// error. Any other error is returned immediately.
func retryOnBusy(fn func() error) error {
	var err error
	for attempt := 0; attempt < busyMaxRetries; attempt++ {
		err = fn()
		if err == nil || !isSQLiteBusy(err) {
			return err
		}
		time.Sleep(busyBaseDelay * time.Duration(attempt+1))
	}
	return err
}
