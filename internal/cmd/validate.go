package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dendrascience/archive-preview/preview"
)

// NewValidateCmd creates and returns the validate subcommand for the arpv CLI.
// It checks that every archive under a path can be previewed.
func NewValidateCmd(opts *options) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate PATH",
		Short: "Check that archives can be previewed",
		Long: `Build the tree of every .zip and .rar file under PATH without extracting
anything or deleting the archives, and report the ones that fail.

Archives are checked concurrently, one per extraction worker.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := preview.NewService(nil, opts.cfg.Extract.FallbackCharset, nil)
			return runValidate(cmd.Context(), cmd.OutOrStdout(), svc, args[0], opts.cfg.WorkerCount(), verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every archive checked")

	return cmd
}

type validation struct {
	path  string
	files int
	err   error
}

func runValidate(ctx context.Context, w io.Writer, svc *preview.Service, root string, workers int, verbose bool) error {
	var archives []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".zip", ".rar":
			if !d.IsDir() {
				archives = append(archives, path)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		results []validation
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range archives {
		g.Go(func() error {
			v := validation{path: path}
			if r, err := svc.Inspect(ctx, path); err != nil {
				v.err = err
			} else {
				v.files = r.Tree.Files()
			}
			mu.Lock()
			results = append(results, v)
			mu.Unlock()
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slices.SortFunc(results, func(a, b validation) int { return strings.Compare(a.path, b.path) })
	failed := 0
	for _, v := range results {
		switch {
		case v.err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", v.path, v.err)
		case verbose:
			fmt.Fprintf(w, "ok   %s (%d files)\n", v.path, v.files)
		}
	}
	fmt.Fprintf(w, "Checked %d archives, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d archives cannot be previewed", failed, len(results))
	}
	return nil
}
