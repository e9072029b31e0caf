package cli

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/mmcdole/lorastudio/internal/config"
	"github.com/mmcdole/lorastudio/internal/log"
	"github.com/mmcdole/lorastudio/internal/state"
)

// runtime is what every command needs before doing work
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRuntime() (*runtime, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadConfigFrom(configFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	return &runtime{cfg: cfg, logger: logger}, nil
}

// applySort sets the filter ordering from stored names, ignoring unknown keys
func applySort(filters *state.FilterState, sortBy, sortOrder string) {
	key, ok := state.ParseSortKey(sortBy)
	if !ok {
		key = filters.SortBy
	}
	order := filters.SortOrder
	if sortOrder != "" {
		order = state.ParseSortOrder(sortOrder)
	}
	filters.SetSort(key, order)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
