package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	jsonOutput bool

	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd opens the TUI, optionally on a project folder
var rootCmd = &cobra.Command{
	Use:     "lorastudio [path]",
	Version: "dev",
	Short:   "Browse, rate and clean up image datasets",
	Long: `lorastudio is a terminal workspace for LoRA training datasets.

Open a folder of images with caption files to filter, sort and rate them,
or find byte-identical duplicates before training.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runTUI,
}

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/lorastudio/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "headless",
		Title: sectionTitleColor.Sprint("Headless Commands:"),
	})

	scanCmd.GroupID = "headless"
	dupesCmd.GroupID = "headless"
	tagCmd.GroupID = "headless"
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(dupesCmd)
	rootCmd.AddCommand(tagCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
