// Package applog sets up the CLI's structured logger
// (spec.md §"AMBIENT STACK"): New builds a *logrus.Logger, which
// cmd/keurnel-asm's assemble-file command creates once per run and passes
// by pointer to LogEntries.
//
// Grounded on the teacher's debugcontext.DebugContext, which collects
// structured entries (severity, message, location) exactly like
// internal/diag.Sink already does for encoder diagnostics; this package
// is the adapter that renders those entries (and the CLI's own operational
// messages) through logrus instead of println, the way a production Go
// CLI in this corpus would.
package applog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/keurnel/x86enc/internal/diag"
)

// New returns a *logrus.Logger configured for the CLI: text formatter,
// full timestamps, level gated by verbose.
func New(verbose bool, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// LogEntries renders every diag.Entry at the log level its severity maps
// to: errors and warnings are always visible; info entries only surface
// at debug level, since they are typically per-instruction chatter.
func LogEntries(log *logrus.Logger, entries []*diag.Entry) {
	for _, e := range entries {
		fields := logrus.Fields{
			"code":     e.Code(),
			"location": e.Location().String(),
		}
		switch e.Severity() {
		case diag.SeverityError:
			log.WithFields(fields).Error(e.Message())
		case diag.SeverityWarning:
			log.WithFields(fields).Warn(e.Message())
		default:
			log.WithFields(fields).Debug(e.Message())
		}
	}
}
