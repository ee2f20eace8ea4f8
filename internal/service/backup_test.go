package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omriBer/diet/internal/db"
	"github.com/omriBer/diet/internal/service"
)

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	src := startedDB(t, 3)
	defer src.Close()

	if _, err := service.UpdateDailyLog(src, "2026-04-20", perfectDay()); err != nil {
		t.Fatalf("log: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "backups")
	out := filepath.Join(dir, service.BackupFileName(testNow))
	info, err := service.CreateBackup(src, out)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info: %+v", info)
	}
	if _, err := service.CreateBackup(src, out); err == nil {
		t.Fatalf("expected error when backup already exists")
	}

	list, err := service.ListBackups(dir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(list) != 1 || list[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backup list: %+v", list)
	}

	target := filepath.Join(t.TempDir(), "restored.db")
	if err := service.RestoreBackup(out, target, false); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := service.RestoreBackup(out, target, false); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected overwrite guard, got %v", err)
	}

	restored, err := db.Open(target)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer restored.Close()
	log, err := service.GetDailyLog(restored, "2026-04-20")
	if err != nil {
		t.Fatalf("get restored log: %v", err)
	}
	if log == nil || !log.Veggies || log.Water != 3 {
		t.Fatalf("restored log mismatch: %+v", log)
	}
}

func TestRestoreBackupChecksumMismatch(t *testing.T) {
	t.Parallel()
	src := newTestDB(t)
	defer src.Close()

	out := filepath.Join(t.TempDir(), "snap.db")
	if _, err := service.CreateBackup(src, out); err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if err := os.WriteFile(out+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("tamper checksum: %v", err)
	}
	err := service.RestoreBackup(out, filepath.Join(t.TempDir(), "x.db"), false)
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	t.Parallel()
	list, err := service.ListBackups(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}
