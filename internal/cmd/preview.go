package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/archive-preview/extract"
	"github.com/dendrascience/archive-preview/internal/logging"
	"github.com/dendrascience/archive-preview/util"
)

type previewFlags struct {
	format     string
	keepSource bool
	report     bool
	noColor    bool
}

// NewPreviewCmd creates and returns the preview subcommand for the arpv CLI.
func NewPreviewCmd(opts *options) *cobra.Command {
	var flags previewFlags

	cmd := &cobra.Command{
		Use:   "preview ARCHIVE",
		Short: "Print the tree of an archive and stage its files",
		Long: `Build the directory tree of a zip or rar archive and print it.

The archive's files are extracted into the staging directory under their
synthesized names, and the archive itself is deleted afterwards. Pass
--keep-source to preview a copy placed in the upload directory instead, so
the original survives.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), cmd.OutOrStdout(), opts, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format: json or tree")
	cmd.Flags().BoolVarP(&flags.keepSource, "keep-source", "k", false, "Preview a copy and leave the original archive in place")
	cmd.Flags().BoolVar(&flags.report, "report", false, "Print an extraction summary once staging finishes")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored tree output")

	return cmd
}

func runPreview(ctx context.Context, w io.Writer, opts *options, archivePath string, flags previewFlags) error {
	if flags.format != "json" && flags.format != "tree" {
		return fmt.Errorf("unknown format %q, want json or tree", flags.format)
	}
	path, err := filepath.Abs(archivePath)
	if err != nil {
		return err
	}
	if flags.keepSource {
		path, err = util.CopyToUploadDir(path, opts.cfg.Paths.Upload)
		if err != nil {
			return fmt.Errorf("copying %s to the upload directory: %w", archivePath, err)
		}
		logging.L().Debug("previewing copy", zap.String("copy", path))
	}

	var (
		mu      sync.Mutex
		reports []extract.Report
	)
	svc, pool, err := opts.newService(func(r extract.Report) {
		mu.Lock()
		reports = append(reports, r)
		mu.Unlock()
	})
	if err != nil {
		return err
	}

	result, err := svc.Build(ctx, path)
	if err != nil {
		pool.Close()
		return fmt.Errorf("preview %s: %w", archivePath, err)
	}

	switch flags.format {
	case "json":
		data, err := json.MarshalIndent(result.Tree, "", "  ")
		if err != nil {
			pool.Close()
			return err
		}
		fmt.Fprintln(w, string(data))
	case "tree":
		renderTree(w, result.Tree, util.BaseName(path), !flags.noColor)
	}

	// Staging must finish before the process exits.
	pool.Close()

	if flags.report {
		for _, r := range reports {
			fmt.Fprintf(w, "task %s: %d staged, %d failed in %s", r.TaskID, r.Extracted, r.Failed, opts.cfg.Paths.Staging)
			if r.SourceRemoved {
				fmt.Fprintf(w, "; removed %s", r.Archive)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}
