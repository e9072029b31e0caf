package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/mmcdole/lorastudio/internal/backend"
	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/events"
	"github.com/mmcdole/lorastudio/internal/session"
	"github.com/spf13/cobra"
)

var (
	scanList      bool
	scanQuery     string
	scanSort      string
	scanOrder     string
	scanProgress  bool
	scanCaptioned string
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan a project folder and summarize it",
	Long: `Scan a project folder the same way the TUI does and print a summary:
image count, captions, ratings and total size. With --list every visible image
is printed using the same filters and ordering as the image list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), rt.cfg.ScanTimeoutDuration())
		defer cancel()

		app := session.NewApp(rt.logger)
		applySort(app.Filters, rt.cfg.Filters.SortBy, rt.cfg.Filters.SortOrder)
		if cmd.Flags().Changed("sort") || cmd.Flags().Changed("order") {
			applySort(app.Filters, scanSort, scanOrder)
		}
		app.Filters.SetQuery(scanQuery)
		if scanCaptioned != "" {
			v, err := strconv.ParseBool(scanCaptioned)
			if err != nil {
				return fmt.Errorf("invalid --captioned value %q: %w", scanCaptioned, err)
			}
			app.Filters.SetShowCaptioned(&v)
		}

		var progressOut io.Writer
		if scanProgress && !jsonOutput {
			progressOut = cmd.ErrOrStderr()
		}

		images, err := loadProject(ctx, app, args[0], progressOut, rt.logger)
		if err != nil {
			return err
		}

		visible := app.Visible()
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), visible)
		}

		root, _ := app.Project.RootPath()
		printScanSummary(cmd.OutOrStdout(), root, images, app.Progress.ImagesFound())
		if scanList {
			printImageTable(cmd.OutOrStdout(), visible)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVarP(&scanList, "list", "l", false, "List visible images")
	scanCmd.Flags().StringVarP(&scanQuery, "query", "q", "", "Fuzzy filter on relative paths")
	scanCmd.Flags().StringVar(&scanSort, "sort", "name", "Sort key: name, file_size, dimensions, tag_count, rating")
	scanCmd.Flags().StringVar(&scanOrder, "order", "asc", "Sort order: asc or desc")
	scanCmd.Flags().StringVar(&scanCaptioned, "captioned", "", "Only captioned (true) or uncaptioned (false) images")
	scanCmd.Flags().BoolVar(&scanProgress, "progress", false, "Report progress on stderr")
}

// loadProject runs a project load headlessly through the same session state
// the TUI uses. One goroutine applies progress while the scan runs; it is
// drained before the result is applied.
func loadProject(ctx context.Context, app *session.App, path string, progressOut io.Writer, logger *slog.Logger) ([]domain.ImageEntry, error) {
	bus := events.NewBus(logger)
	local := backend.New(bus, logger)

	deliveries := make(chan session.ProgressDelivery, 64)
	app.SubscribeProgress(bus, func(d session.ProgressDelivery) {
		deliveries <- d
	})

	root, err := app.OpenProject(path)
	if err != nil {
		app.Close()
		close(deliveries)
		return nil, err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for d := range deliveries {
			if app.ApplyProgress(d) && progressOut != nil {
				fmt.Fprintf(progressOut, "\r%s images found", humanize.Comma(int64(app.Progress.ImagesFound())))
			}
		}
	}()

	images, scanErr := local.ScanProject(ctx, root)

	// ScanProject emits its last event before returning
	close(deliveries)
	wg.Wait()
	app.Close()
	if progressOut != nil {
		fmt.Fprintln(progressOut)
	}

	app.ResolveScan(root, images, scanErr)
	if scanErr != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, scanErr)
	}
	return images, nil
}

func printScanSummary(w io.Writer, root string, images []domain.ImageEntry, found int) {
	var captioned int
	var size int64
	ratings := make(map[domain.Rating]int)
	for _, img := range images {
		if img.HasCaption {
			captioned++
		}
		size += img.FileSize
		ratings[img.Rating]++
	}

	PrintSection(w, root)
	PrintLabelValue(w, "Images", humanize.Comma(int64(len(images))))
	PrintLabelValue(w, "Reported", humanize.Comma(int64(found)))
	PrintLabelValue(w, "Captioned", fmt.Sprintf("%d of %d", captioned, len(images)))
	PrintLabelValue(w, "Total size", humanize.Bytes(uint64(size)))
	for _, r := range domain.Ratings() {
		PrintLabelValue(w, r.Label(), strconv.Itoa(ratings[r]))
	}

	if len(images) == 0 {
		PrintWarning(w, "No images found")
	} else if captioned < len(images) {
		PrintWarning(w, PrintCount(len(images)-captioned, "image has", "images have")+" no caption")
	} else {
		PrintSuccess(w, "Every image is captioned")
	}
}

func printImageTable(w io.Writer, images []domain.ImageEntry) {
	if len(images) == 0 {
		PrintEmptyState(w, "No images match")
		return
	}
	rows := make([][]string, 0, len(images))
	for _, img := range images {
		rows = append(rows, []string{
			img.RelativePath,
			fmt.Sprintf("%dx%d", img.Width, img.Height),
			humanize.Bytes(uint64(img.FileSize)),
			strconv.Itoa(len(img.Tags)),
			img.Rating.Label(),
		})
	}
	fmt.Fprintln(w)
	PrintTable(w, []string{"PATH", "SIZE", "BYTES", "TAGS", "RATING"}, rows)
}
