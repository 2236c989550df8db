package portal

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger emits structured diagnostics (missing-precondition no-ops, container
// lifecycle). Nothing in this library surfaces errors: a transient layout
// race must never crash the consuming game, so anomalies are only observable
// here. Defaults to warn level so routine no-ops stay quiet.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "portal",
	Level:  log.WarnLevel,
})

// SetLogger replaces the package logger. Pass a logger with
// log.DebugLevel to see registry and overlay lifecycle events.
func SetLogger(l *log.Logger) {
	if l == nil {
		panic("portal: SetLogger requires a non-nil logger")
	}
	logger = l
}
