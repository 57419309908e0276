package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/sonar-maze/parameter"
)

func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		log.SetOutput(os.Stderr)
	})
}

func TestSetupDisabledByDefault(t *testing.T) {
	resetLogger(t)

	f, err := Setup(false, t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if f != nil {
		t.Error("Expected nil log file when debug=false")
		f.Close()
	}
	if logrus.StandardLogger().Out != io.Discard {
		t.Errorf("Expected logrus output to be io.Discard, got %v", logrus.StandardLogger().Out)
	}
}

func TestSetupEnabledWithDebug(t *testing.T) {
	resetLogger(t)
	dir := filepath.Join(t.TempDir(), "logs")

	f, err := Setup(true, dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if f == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer f.Close()

	logrus.WithField("component", "test").Debug("Test log message")

	path := filepath.Join(dir, parameter.LogFileName)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		t.Error("Expected debug level enabled")
	}
}

func TestSetupRotation(t *testing.T) {
	resetLogger(t)
	dir := t.TempDir()
	path := filepath.Join(dir, parameter.LogFileName)

	// Write just over the limit
	if err := os.WriteFile(path, make([]byte, parameter.LogMaxSize+1), 0o644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	f, err := Setup(true, dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer f.Close()

	old, err := os.Stat(path + ".old")
	if err != nil {
		t.Fatalf("Expected rotated log file: %v", err)
	}
	if old.Size() != parameter.LogMaxSize+1 {
		t.Errorf("Expected rotated file to keep %d bytes, got %d", parameter.LogMaxSize+1, old.Size())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > parameter.LogMaxSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", parameter.LogMaxSize, info.Size())
	}
}

func TestSetupKeepsSmallLog(t *testing.T) {
	resetLogger(t)
	dir := t.TempDir()
	path := filepath.Join(dir, parameter.LogFileName)
	if err := os.WriteFile(path, []byte("previous run\n"), 0o644); err != nil {
		t.Fatalf("Failed to seed log file: %v", err)
	}

	f, err := Setup(true, dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer f.Close()

	if _, err := os.Stat(path + ".old"); !os.IsNotExist(err) {
		t.Error("Expected no rotation below the limit")
	}
}
