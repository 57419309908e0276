// Package logging routes logrus output to a rotated file. Frontends own the terminal,
// so nothing is ever written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/sonar-maze/parameter"
)

// Setup configures the standard logrus logger. With debug off all output is discarded
// and the returned file is nil. With debug on the log lives at dir/sonar-maze.log,
// moved aside to .old once it exceeds the size limit.
func Setup(debug bool, dir string) (*os.File, error) {
	logger := logrus.StandardLogger()

	if !debug {
		logger.SetOutput(io.Discard)
		logger.SetLevel(logrus.InfoLevel)
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if dir == "" {
		dir = parameter.LogDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create %s: %w", dir, err)
	}

	path := filepath.Join(dir, parameter.LogFileName)
	if err := rotate(path, parameter.LogMaxSize); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	logger.SetOutput(f)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	// Third-party packages logging through the stdlib end up in the same file
	log.SetOutput(logger.Writer())

	logger.WithField("path", path).Info("logging started")
	return f, nil
}

// rotate moves path to path.old when larger than limit
func rotate(path string, limit int64) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("logging: stat %s: %w", path, err)
	}
	if info.Size() <= limit {
		return nil
	}
	if err := os.Rename(path, path+".old"); err != nil {
		return fmt.Errorf("logging: rotate %s: %w", path, err)
	}
	return nil
}
