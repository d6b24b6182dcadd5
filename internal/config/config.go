// Package config loads process settings: built-in defaults, then an optional
// coloroid config file, then the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	loopconfig "github.com/tomz197/coloroid/internal/loop/config"
)

// Settings holds everything the binaries can be configured with.
type Settings struct {
	SSH   SSHSettings
	Web   WebSettings
	Game  GameSettings
	Audio AudioSettings
	Log   LogSettings
}

// SSHSettings configures cmd/ssh.
type SSHSettings struct {
	Host        string
	Port        string
	HostKeyPath string
	DisplayHost string // Host name shown to visitors of the web page
}

// WebSettings configures cmd/web.
type WebSettings struct {
	Host string
	Port string
}

// GameSettings overrides parts of the default tuning.
type GameSettings struct {
	Seed            uint64 // Zero seeds every session independently
	MaxLives        int
	StartMana       float64
	MaxMana         float64
	PaletteSwap     time.Duration
	Preroll         time.Duration
	PowerupDuration time.Duration
}

// AudioSettings configures sound in cmd/game.
type AudioSettings struct {
	Enabled bool
	Volume  float64 // Linear gain in [0, 1]
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level string
	File  string // Log destination for the local game, which owns the terminal
}

// envBindings keeps the historical unprefixed variable names.
var envBindings = map[string]string{
	"ssh.host":         "SSH_HOST",
	"ssh.port":         "SSH_PORT",
	"ssh.host_key":     "SSH_HOST_KEY",
	"ssh.display_host": "SSH_DISPLAY_HOST",
	"web.host":         "WEB_HOST",
	"web.port":         "WEB_PORT",
}

// Load reads settings from the default search path and the environment.
// A missing config file is not an error.
func Load() (Settings, error) {
	v := newViper()
	v.SetConfigName("coloroid")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/coloroid")
	v.AddConfigPath("/etc/coloroid")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

// LoadFile reads settings from the given file and the environment.
func LoadFile(path string) (Settings, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	def := loopconfig.DefaultTuning()

	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.host_key", "/app/keys/host_key")
	v.SetDefault("ssh.display_host", "your-server.com")
	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.max_lives", def.MaxLives)
	v.SetDefault("game.start_mana", def.StartMana)
	v.SetDefault("game.max_mana", def.MaxMana)
	v.SetDefault("game.palette_swap", def.PaletteSwap)
	v.SetDefault("game.preroll", def.Preroll)
	v.SetDefault("game.powerup_duration", def.PowerupLength)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.6)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix("COLOROID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}

func decode(v *viper.Viper) (Settings, error) {
	s := Settings{
		SSH: SSHSettings{
			Host:        v.GetString("ssh.host"),
			Port:        v.GetString("ssh.port"),
			HostKeyPath: v.GetString("ssh.host_key"),
			DisplayHost: v.GetString("ssh.display_host"),
		},
		Web: WebSettings{
			Host: v.GetString("web.host"),
			Port: v.GetString("web.port"),
		},
		Game: GameSettings{
			Seed:            v.GetUint64("game.seed"),
			MaxLives:        v.GetInt("game.max_lives"),
			StartMana:       v.GetFloat64("game.start_mana"),
			MaxMana:         v.GetFloat64("game.max_mana"),
			PaletteSwap:     v.GetDuration("game.palette_swap"),
			Preroll:         v.GetDuration("game.preroll"),
			PowerupDuration: v.GetDuration("game.powerup_duration"),
		},
		Audio: AudioSettings{
			Enabled: v.GetBool("audio.enabled"),
			Volume:  v.GetFloat64("audio.volume"),
		},
		Log: LogSettings{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}
	if _, err := log.ParseLevel(s.Log.Level); err != nil {
		return Settings{}, fmt.Errorf("log level: %w", err)
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return Settings{}, fmt.Errorf("audio volume %.2f outside [0,1]", s.Audio.Volume)
	}
	return s, nil
}

// Tuning applies the game overrides to the default tuning and validates the result.
func (s Settings) Tuning() (loopconfig.Tuning, error) {
	t := loopconfig.DefaultTuning()
	t.MaxLives = s.Game.MaxLives
	t.MaxMana = s.Game.MaxMana
	t.StartMana = s.Game.StartMana
	t.PaletteSwap = s.Game.PaletteSwap
	t.Preroll = s.Game.Preroll
	t.PowerupLength = s.Game.PowerupDuration
	if err := t.Validate(); err != nil {
		return loopconfig.Tuning{}, fmt.Errorf("game settings: %w", err)
	}
	return t, nil
}

// SSHAddr returns the SSH listen address.
func (s Settings) SSHAddr() string {
	return joinHostPort(s.SSH.Host, s.SSH.Port)
}

// WebAddr returns the web listen address.
func (s Settings) WebAddr() string {
	return joinHostPort(s.Web.Host, s.Web.Port)
}

func joinHostPort(host, port string) string {
	if strings.Contains(host, ":") {
		return "[" + host + "]:" + port
	}
	return host + ":" + port
}

// NewLogger returns a logger writing to w at the configured level.
func (s Settings) NewLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
}
