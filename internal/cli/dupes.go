package cli

import (
	"context"
	"fmt"

	"github.com/mmcdole/lorastudio/internal/backend"
	"github.com/mmcdole/lorastudio/internal/session"
	"github.com/mmcdole/lorastudio/internal/state"
	"github.com/spf13/cobra"
)

var dupesCmd = &cobra.Command{
	Use:   "dupes <path>",
	Short: "Find images with identical content",
	Long: `Hash every image in a project folder and print the groups of files
whose contents are byte-identical. Exits non-zero if the scan fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), rt.cfg.ScanTimeoutDuration())
		defer cancel()

		project := state.NewProjectIdentity()
		project.SetRootPath(session.NormalizeRoot(args[0]))

		scan := session.NewDuplicateScan(rt.logger)
		if err := scan.Run(project); err != nil {
			return fmt.Errorf("finding duplicates: %w", err)
		}

		local := backend.New(nil, rt.logger)
		result, err := local.FindDuplicates(ctx, scan.Root())
		scan.Settle(scan.Session(), result, err)
		if scan.Status() == session.ScanFailed {
			return fmt.Errorf("finding duplicates: %w", err)
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), scan.Result())
		}

		w := cmd.OutOrStdout()
		groups := scan.Groups()
		PrintSection(w, scan.Root())
		if len(groups) == 0 {
			PrintSuccess(w, "No duplicates found")
			return nil
		}

		PrintWarning(w, fmt.Sprintf("%s, %s",
			PrintCount(session.GroupCount(groups), "group", "groups"),
			PrintCount(session.RedundantCount(groups), "redundant file", "redundant files")))
		for i, g := range groups {
			fmt.Fprintln(w)
			PrintLabelValue(w, fmt.Sprintf("Group %d", i+1), PrintCount(len(g), "file", "files"))
			PrintList(w, g, 2)
		}
		return nil
	},
}
