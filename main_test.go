package main

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func buildLeptinBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	binPath := filepath.Join(t.TempDir(), "leptin")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build leptin binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runLeptin(t *testing.T, binPath, dbPath string, args ...string) (string, string, int) {
	t.Helper()
	allArgs := append([]string{"--db", dbPath}, args...)
	cmd := exec.Command(binPath, allArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run leptin command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func TestThirteenWeekJourney(t *testing.T) {
	binPath := buildLeptinBinary(t)
	dbPath := filepath.Join(t.TempDir(), "leptin.db")
	start := time.Now().AddDate(0, 0, -60).Format("2006-01-02")

	if _, stderr, exit := runLeptin(t, binPath, dbPath, "today"); exit != 1 || !strings.Contains(stderr, "leptin setup") {
		t.Fatalf("today before setup: exit=%d stderr=%s", exit, stderr)
	}
	if _, stderr, exit := runLeptin(t, binPath, dbPath, "setup", "--name", "Maya", "--start-date", start); exit != 0 {
		t.Fatalf("setup failed: exit=%d stderr=%s", exit, stderr)
	}
	if _, stderr, exit := runLeptin(t, binPath, dbPath, "log", "set", "--water", "2", "--veggies", "--slip"); exit != 0 {
		t.Fatalf("log set failed: exit=%d stderr=%s", exit, stderr)
	}
	stdout, stderr, exit := runLeptin(t, binPath, dbPath, "today")
	if exit != 0 {
		t.Fatalf("today failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Week 9 of 13") || !strings.Contains(stdout, "leptin track list") {
		t.Fatalf("expected week 9 with a track prompt, got %s", stdout)
	}
	// 20 + 25 + 10 (fats) - 20 (slip)
	if !strings.Contains(stdout, "35%") {
		t.Fatalf("expected score 35, got %s", stdout)
	}
	if _, stderr, exit := runLeptin(t, binPath, dbPath, "track", "set", "moderate"); exit != 0 {
		t.Fatalf("track set failed: exit=%d stderr=%s", exit, stderr)
	}
	if _, stderr, exit := runLeptin(t, binPath, dbPath, "doctor"); exit != 0 {
		t.Fatalf("doctor failed: exit=%d stderr=%s", exit, stderr)
	}
}

func TestCLIRejectsNegativeWater(t *testing.T) {
	binPath := buildLeptinBinary(t)
	dbPath := filepath.Join(t.TempDir(), "leptin.db")
	if _, stderr, exit := runLeptin(t, binPath, dbPath, "setup"); exit != 0 {
		t.Fatalf("setup failed: exit=%d stderr=%s", exit, stderr)
	}
	_, stderr, exit := runLeptin(t, binPath, dbPath, "log", "set", "--water", "-1")
	if exit == 0 || !strings.Contains(stderr, "water must be >= 0") {
		t.Fatalf("expected negative water rejection, exit=%d stderr=%s", exit, stderr)
	}
}
