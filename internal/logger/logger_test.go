package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitWritesDatedFile(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Options{Enabled: true, LogDir: dir}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("parse complete", "file", "demo.so")

	name := filepath.Join(dir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}
}

func TestInitDisabledDiscards(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Options{Enabled: false, LogDir: dir}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("dropped")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no log files, found %d", len(entries))
	}
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, logPrefix+"2020-01-01"+logSuffix)
	if err := os.WriteFile(old, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(dir, "unrelated.txt")
	if err := os.WriteFile(keep, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	cleanOldLogs(dir)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatal("stale log file survived cleanup")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatal("unrelated file was removed")
	}
}
