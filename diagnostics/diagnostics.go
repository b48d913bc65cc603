// Package diagnostics provides a scoped stage-duration logger, the
// duration-logging utility spec.md names as an external collaborator of
// the core: a caller wraps one stage of work with Track and the elapsed
// time is logged when the returned function runs, typically via defer.
package diagnostics

import (
	"time"

	"searchengine/logger"
)

// Track starts timing stage and returns a function that logs its elapsed
// duration when called. Intended use:
//
//	defer diagnostics.Track("find_top_documents")()
func Track(stage string) func() {
	start := time.Now()
	return func() {
		logger.Debug("%s: %s", stage, time.Since(start))
	}
}
