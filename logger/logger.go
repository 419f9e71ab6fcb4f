package logger

import (
	"os"

	"github.com/sirupsen/logrus"

	"securebank/config"
)

var Log *logrus.Logger

// Init builds the package-level logger. Output goes to stderr so the
// interactive menu keeps stdout to itself.
func Init() {
	Log = logrus.New()
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(config.AppConfig.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
