package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/coloroid/internal/audio"
	"github.com/tomz197/coloroid/internal/config"
	"github.com/tomz197/coloroid/internal/loop"
	"github.com/tomz197/coloroid/internal/loop/client"
	"github.com/tomz197/coloroid/internal/loop/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	tuning, err := settings.Tuning()
	if err != nil {
		return err
	}

	// The terminal is the game screen, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if settings.Log.File != "" {
		f, err := os.OpenFile(settings.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := settings.NewLogger(logOut)

	gs, err := server.NewServer(server.Options{Tuning: tuning, Seed: settings.Game.Seed, Logger: logger})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gs.Run(ctx)

	onEvent := func(loop.Event) {}
	if settings.Audio.Enabled {
		player, err := audio.NewPlayer(audio.Options{Volume: settings.Audio.Volume, Logger: logger})
		if err != nil {
			logger.Warn("Audio disabled", "err", err)
		} else {
			defer player.Close()
			onEvent = player.Handle
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(gs, reader, os.Stdout, client.ClientOptions{
		Username: localUsername(),
		Profile:  termenv.EnvColorProfile(),
		OnEvent:  onEvent,
	})
	logger.Info("Local game started", "user", localUsername())
	return c.Run()
}

func localUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
