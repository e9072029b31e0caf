package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/lorastudio/internal/backend"
	"github.com/mmcdole/lorastudio/internal/events"
	"github.com/mmcdole/lorastudio/internal/session"
	"github.com/mmcdole/lorastudio/internal/store"
	"github.com/mmcdole/lorastudio/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrNotATerminal is returned when the TUI is started without a terminal
var ErrNotATerminal = errors.New("lorastudio needs a terminal; use 'lorastudio scan' or 'lorastudio dupes' for headless output")

// isTerminal is swapped out by tests
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// openMemoryStore is swapped out by tests
var openMemoryStore = func() (*store.Store, error) {
	return store.Open("")
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return ErrNotATerminal
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	logger := rt.logger
	logger.Info("starting lorastudio", "version", rootCmd.Version)

	st, err := store.Open(rt.cfg.Cache.Dir)
	if err != nil {
		logger.Warn("store unavailable, using memory", "error", err)
		if st, err = openMemoryStore(); err != nil {
			return fmt.Errorf("opening memory store: %w", err)
		}
	}
	defer st.Close()

	app := session.NewApp(logger)
	applySort(app.Filters, rt.cfg.Filters.SortBy, rt.cfg.Filters.SortOrder)
	if prefs, ok := st.GetPreferences(); ok {
		applySort(app.Filters, prefs.SortBy, prefs.SortOrder)
	}

	root := rt.cfg.Project.DefaultRoot
	if len(args) > 0 {
		root = args[0]
	}

	bus := events.NewBus(logger)
	model := tui.NewModel(app, tui.Options{
		Backend:     backend.New(bus, logger),
		Bus:         bus,
		Store:       st,
		Logger:      logger,
		InitialRoot: root,
		ScanTimeout: rt.cfg.ScanTimeoutDuration(),
		RecentLimit: rt.cfg.Project.RecentLimit,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return err
	}

	logger.Info("shutting down")
	return nil
}
