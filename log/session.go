package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quickplay-cli/quickplay/filesystem"
	logrus "github.com/sirupsen/logrus"
)

// NewSessionLogger opens path for appending and returns a logger that writes only there.
// It is independent of the application log and of logs.write.
// The returned closer must be called once the session is over.
func NewSessionLogger(path string) (*logrus.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := filesystem.API().MkdirAll(dir, os.ModePerm); err != nil {
			return nil, nil, fmt.Errorf("create session log directory: %w", err)
		}
	}

	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open session log: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)

	return logger, f, nil
}

// Discard returns a logger that drops everything, for sessions without a log file.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
