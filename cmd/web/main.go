package main

import (
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/coloroid/internal/config"
)

//go:embed index.html
var htmlPage string

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := settings.NewLogger(os.Stderr)

	http.Handle("/", pageHandler(settings.SSH.DisplayHost, settings.SSH.Port))

	addr := settings.WebAddr()
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}

// pageHandler serves the landing page with the SSH command filled in.
func pageHandler(sshHost, sshPort string) http.HandlerFunc {
	command := "ssh " + sshHost
	if sshPort != "" && sshPort != "22" {
		command = fmt.Sprintf("ssh -p %s %s", sshPort, sshHost)
	}
	page := strings.NewReplacer("{{.SSHHost}}", sshHost, "{{.SSHCommand}}", command).Replace(htmlPage)

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}
