package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Joshcode41/todo-app/internal/client"
	"github.com/Joshcode41/todo-app/internal/config"
	"github.com/Joshcode41/todo-app/internal/logging"
	"github.com/Joshcode41/todo-app/internal/notify"
	"github.com/Joshcode41/todo-app/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	apiURL := flag.String("api", cfg.APIURL, "TodoService base URL")
	route := flag.String("route", ui.ListPath, "start route, e.g. /Todo/Edit/<id>")
	flag.Parse()

	cfg.APIURL = *apiURL
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs only go to a file.
	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel, "todo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	logger.Info("starting", "api", cfg.APIURL, "route", *route)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	toaster := notify.NewToaster(cfg.ToastTTL.Duration())
	router := ui.NewRouter(ui.Options{
		Context:   ctx,
		API:       client.New(cfg.APIURL, cfg.RequestTimeout.Duration()),
		Notifier:  toaster,
		Toasts:    toaster,
		Logger:    logger,
		StartPath: *route,
	})

	p := tea.NewProgram(router, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
