package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/archive-preview/internal/logging"
	"github.com/dendrascience/archive-preview/previewfs"
	"github.com/dendrascience/archive-preview/util"
	"github.com/dendrascience/archive-preview/version"
)

// NewMountCmd creates and returns the mount subcommand for the arpv CLI.
// It mounts the preview tree of one archive at a mountpoint.
func NewMountCmd(opts *options) *cobra.Command {
	var keepSource bool

	cmd := &cobra.Command{
		Use:   "mount ARCHIVE MOUNTPOINT",
		Short: "Mount an archive's tree as a read-only filesystem",
		Long: `Build the tree of ARCHIVE and mount it read-only at MOUNTPOINT.

Files are served from the staging directory as extraction completes; a file
that has not been staged yet reads as missing. The archive is deleted once
staging finishes unless --keep-source is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd.Context(), opts, args[0], args[1], keepSource)
		},
	}

	cmd.Flags().BoolVarP(&keepSource, "keep-source", "k", false, "Mount a copy and leave the original archive in place")

	return cmd
}

func runMount(ctx context.Context, opts *options, archivePath, mountpoint string, keepSource bool) error {
	logger := logging.L().Named("mount")
	logger.Info("arpv starting", zap.String("version", version.GetFullVersion()))

	if pathsOverlap(opts.cfg.Paths.Staging, mountpoint) {
		return fmt.Errorf("mountpoint %s overlaps the staging directory %s", mountpoint, opts.cfg.Paths.Staging)
	}

	path := archivePath
	if keepSource {
		var err error
		if path, err = util.CopyToUploadDir(archivePath, opts.cfg.Paths.Upload); err != nil {
			return err
		}
	}

	svc, pool, err := opts.newService(nil)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := svc.Build(ctx, path)
	if err != nil {
		return fmt.Errorf("preview %s: %w", archivePath, err)
	}
	filesystem := previewfs.New(result.Tree, opts.cfg.Paths.Staging)

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("arpv"),
		fuse.Subtype("arpv"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, unmounting")
		if err := fuse.Unmount(mountpoint); err != nil {
			logger.Warn("unmount failed", zap.Error(err))
		}
	}()

	logger.Info("mounted",
		zap.String("archive", util.BaseName(archivePath)),
		zap.String("mountpoint", mountpoint),
		zap.Int("files", result.Tree.Files()),
	)
	return fs.Serve(c, filesystem)
}

// pathsOverlap reports whether one path contains the other. Relative paths
// are resolved against the working directory first.
func pathsOverlap(path1, path2 string) bool {
	abs1, err1 := filepath.Abs(path1)
	abs2, err2 := filepath.Abs(path2)
	if err1 != nil || err2 != nil {
		return true
	}
	if abs1 == abs2 {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(abs1+sep, abs2+sep) || strings.HasPrefix(abs2+sep, abs1+sep)
}
