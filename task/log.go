package task

import "go.uber.org/zap"

// logger is this package's ambient logger (SPEC_FULL.md's ambient stack):
// a Nop logger by default, overridable by the embedding application via
// SetLogger. Task bodies run on arbitrary goroutines with no natural place
// to inject a per-call logger, so a package-level logger (swappable, not
// global mutable state accessed from hot paths) is the pragmatic fit.
var logger = zap.NewNop()

// SetLogger overrides the logger used to report recovered panics and
// dispatch/schedule failures.
func SetLogger(log *zap.Logger) {
	if log != nil {
		logger = log
	}
}
