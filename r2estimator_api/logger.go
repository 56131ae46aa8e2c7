package r2estimator_api

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Log is the logger used by the whole tool. It writes to stderr.
var Log = logrus.New()

// ConfigureLogging sets the log level and drops timestamps when stderr is not a terminal
func ConfigureLogging(verbose bool) {
	Log.SetOutput(os.Stderr)
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		Log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	}
	if verbose {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.WarnLevel)
	}
}
