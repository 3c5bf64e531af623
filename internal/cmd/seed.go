package cmd

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dendrascience/archive-preview/util"
)

// NewSeedCmd creates and returns the seed subcommand for the arpv CLI.
// It generates a zip archive with a randomized directory structure.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		maxDepth   int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a sample archive with a randomized layout",
		Long: `Generate a zip archive for exercising previews.

Files are spread over a randomly nested directory hierarchy up to --depth
levels deep. Some directory names repeat on different levels, and some file
names repeat in different directories, so the archive exercises depth-prefixed
directory keys and colliding file keys. Each file contains a single UUID line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.OutOrStdout(), outputPath, fileCount, maxDepth, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path of the zip file to write (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 100, "Number of files to generate")
	cmd.Flags().IntVarP(&maxDepth, "depth", "d", 4, "Maximum directory depth")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

var (
	seedDirNames  = []string{"docs", "images", "reports", "2024", "archive", "misc"}
	seedFileNames = []string{"readme.txt", "summary.json", "notes.md", "data.csv"}
)

func runSeed(w io.Writer, outputPath string, fileCount, maxDepth int, verbose bool) error {
	if fileCount < 1 || maxDepth < 0 {
		return fmt.Errorf("need --count >= 1 and --depth >= 0")
	}
	workDir, err := os.MkdirTemp("", "arpv-seed-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	created := 0
	for attempts := 0; created < fileCount && attempts < fileCount*10; attempts++ {
		dir := workDir
		for range rand.IntN(maxDepth + 1) {
			dir = filepath.Join(dir, seedDirNames[rand.IntN(len(seedDirNames))])
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		name := seedFileNames[rand.IntN(len(seedFileNames))]
		if rand.IntN(2) == 0 {
			name = fmt.Sprintf("%08x%s", rand.Uint32(), filepath.Ext(name))
		}
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(uuid.NewString()+"\n"), 0o644); err != nil {
			return err
		}
		created++
		if verbose && created%100 == 0 {
			fmt.Fprintf(w, "Created %d/%d files...\n", created, fileCount)
		}
	}

	if err := util.ZipDirectory(workDir, outputPath); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Fprintf(w, "Wrote %s with %d files\n", outputPath, created)
	return nil
}
