package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmcdole/lorastudio/internal/backend"
	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/session"
	"github.com/spf13/cobra"
)

var (
	tagAdd    string
	tagRemove string
	tagSet    string
)

var tagCmd = &cobra.Command{
	Use:   "tag <path> <image>",
	Short: "Show or edit an image's caption tags",
	Long: `Print the tags in an image's caption file, or edit them.

The image is given relative to the project folder. --set replaces the caption,
then --remove and --add apply in that order. Each takes a comma-separated list,
the same format as the caption file. Matching ignores case.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		root := session.NormalizeRoot(args[0])
		rel := filepath.ToSlash(filepath.Clean(args[1]))
		local := backend.New(nil, rt.logger)

		caption, err := editCaption(ctx, local, root, rel, cmd.Flags().Changed("set"))
		if err != nil {
			return fmt.Errorf("editing caption: %w", err)
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), caption)
		}

		w := cmd.OutOrStdout()
		PrintSection(w, rel)
		switch {
		case !caption.Exists:
			PrintEmptyState(w, "No caption file")
		case len(caption.Tags) == 0:
			PrintEmptyState(w, "Caption is empty")
		default:
			PrintLabelValue(w, "Tags", strings.Join(caption.Tags, ", "))
		}
		return nil
	},
}

// editCaption applies the flag edits in order. With none it only reads.
func editCaption(ctx context.Context, b domain.Backend, root, rel string, set bool) (domain.Caption, error) {
	var (
		caption domain.Caption
		err     error
	)
	if set {
		if caption, err = b.WriteCaption(ctx, root, rel, backend.ParseTags(tagSet)); err != nil {
			return domain.Caption{}, err
		}
	}
	for _, t := range backend.ParseTags(tagRemove) {
		if caption, err = b.RemoveTag(ctx, root, rel, t); err != nil {
			return domain.Caption{}, err
		}
	}
	for _, t := range backend.ParseTags(tagAdd) {
		if caption, err = b.AddTag(ctx, root, rel, t); err != nil {
			return domain.Caption{}, err
		}
	}
	if !set && tagRemove == "" && tagAdd == "" {
		// a blank tag reads the caption without writing it
		return b.AddTag(ctx, root, rel, "")
	}
	return caption, nil
}

func init() {
	tagCmd.Flags().StringVarP(&tagAdd, "add", "a", "", "Tags to append")
	tagCmd.Flags().StringVarP(&tagRemove, "remove", "r", "", "Tags to remove")
	tagCmd.Flags().StringVar(&tagSet, "set", "", "Replace the caption with these tags")
}
