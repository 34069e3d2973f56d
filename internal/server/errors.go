package server

import "errors"

// ErrRunInProgress is returned to a streaming client while another pass
// holds the sheet.
var ErrRunInProgress = errors.New("a sync is already running, try again when it finishes")

// errorLine is the one line shown to the user when a run stops. Anything
// logged before the failure is dropped from the page; the server log keeps it.
func errorLine(err error) string {
	return "Error: " + err.Error()
}
