package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	loopconfig "github.com/tomz197/coloroid/internal/loop/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.SSH.Port != "2222" || s.Web.Port != "8080" {
		t.Errorf("ports = %s/%s", s.SSH.Port, s.Web.Port)
	}
	if s.SSHAddr() != "[::]:2222" {
		t.Errorf("SSHAddr = %s", s.SSHAddr())
	}
	if s.WebAddr() != "0.0.0.0:8080" {
		t.Errorf("WebAddr = %s", s.WebAddr())
	}

	tu, err := s.Tuning()
	if err != nil {
		t.Fatalf("Tuning: %v", err)
	}
	if tu != loopconfig.DefaultTuning() {
		t.Errorf("tuning = %+v, want defaults", tu)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("SSH_DISPLAY_HOST", "play.example.com")
	t.Setenv("COLOROID_GAME_START_MANA", "0")
	t.Setenv("COLOROID_GAME_SEED", "99")
	t.Setenv("COLOROID_GAME_PALETTE_SWAP", "10s")
	t.Setenv("COLOROID_AUDIO_ENABLED", "false")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.SSH.Port != "2323" || s.SSH.DisplayHost != "play.example.com" {
		t.Errorf("ssh = %+v", s.SSH)
	}
	if s.Game.Seed != 99 || s.Game.StartMana != 0 || s.Game.PaletteSwap != 10*time.Second {
		t.Errorf("game = %+v", s.Game)
	}
	if s.Audio.Enabled {
		t.Error("audio still enabled")
	}

	tu, err := s.Tuning()
	if err != nil {
		t.Fatalf("Tuning: %v", err)
	}
	if tu.StartMana != 0 || tu.PaletteSwap != 10*time.Second {
		t.Errorf("tuning = %+v", tu)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coloroid.yaml")
	data := []byte("game:\n  max_lives: 5\n  preroll: 500ms\nweb:\n  port: \"9090\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if s.Game.MaxLives != 5 || s.Game.Preroll != 500*time.Millisecond || s.Web.Port != "9090" {
		t.Errorf("settings = %+v", s)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit file")
	}
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "coloroid.toml"), []byte("[game]\nmax_mana = 300\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Game.MaxMana != 300 {
		t.Errorf("max mana = %.0f, want 300", s.Game.MaxMana)
	}
}

func TestTuningRejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COLOROID_GAME_START_MANA", "500")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := s.Tuning(); !errors.Is(err, loopconfig.ErrInvalidTuning) {
		t.Fatalf("Tuning error = %v, want ErrInvalidTuning", err)
	}
}

func TestLoadRejectsVolume(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COLOROID_AUDIO_VOLUME", "3")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for volume > 1")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COLOROID_LOG_LEVEL", "warn")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var buf bytes.Buffer
	logger := s.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "key=value") {
		t.Fatalf("log output = %q", out)
	}
}

func TestLoadRejectsLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COLOROID_LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
