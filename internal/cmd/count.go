package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the arpv CLI.
// It counts files in the staging directory.
func NewCountCmd(opts *options) *cobra.Command {
	var (
		archiveName  string
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "count [DIR]",
		Short: "Count staged files",
		Long: `Count the files in the staging directory, or in DIR if given.

With --archive only files staged from archives with that base name are
counted, matching the "{archive}_{name}" key layout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.cfg.Paths.Staging
			if len(args) > 0 {
				dir = args[0]
			}
			return runCount(cmd.OutOrStdout(), dir, archiveName, showProgress)
		},
	}

	cmd.Flags().StringVarP(&archiveName, "archive", "a", "", "Only count files staged from this archive name")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show progress every 10,000 files")

	return cmd
}

func runCount(w io.Writer, dir, archiveName string, showProgress bool) error {
	prefix := ""
	if archiveName != "" {
		prefix = archiveName + "_"
	}
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), prefix) {
			return nil
		}
		count++
		if showProgress && count%10000 == 0 {
			fmt.Fprintf(w, "Progress: %d files counted\n", count)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("counting files in %s: %w", dir, err)
	}

	fmt.Fprintf(w, "Total files: %d\n", count)
	return nil
}
