package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/gizmo/internal/logger"
)

func TestFatalSyncsBeforeExit(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "gizmo.log")
	cfg := logger.FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
	if err := logger.InitWithFileConfig("info", cfg, false); err != nil {
		t.Fatalf("init: %v", err)
	}

	var calls []string
	defer func(exit func(int), sync func()) { osExit, syncLogger = exit, sync }(osExit, syncLogger)
	syncLogger = func() {
		calls = append(calls, "sync")
		logger.Sync()
	}
	osExit = func(code int) {
		if code != -1 {
			t.Errorf("exit code = %d, want -1", code)
		}
		calls = append(calls, "exit")
	}

	fatal("failed to create viewer", errors.New("no GL context"))

	if want := []string{"sync", "exit"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "failed to create viewer") || !strings.Contains(string(data), "no GL context") {
		t.Errorf("log file lacks the fatal entry:\n%s", data)
	}
}
