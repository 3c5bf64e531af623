package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/archive-preview/extract"
	"github.com/dendrascience/archive-preview/internal/config"
	"github.com/dendrascience/archive-preview/internal/logging"
	"github.com/dendrascience/archive-preview/preview"
	"github.com/dendrascience/archive-preview/version"
)

// options carries the persistent flags and the configuration resolved from
// them. It is filled in by the root command before any subcommand runs.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	stagingDir string
	workers    int

	cfg *config.Config
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if flags.Changed("staging-dir") {
		cfg.Paths.Staging = o.stagingDir
	}
	if flags.Changed("workers") {
		cfg.Extract.Workers = o.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.Output,
	}); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// newService wires a preview service to a fresh extraction pool. The caller
// must Close the pool, which waits for queued extraction to finish.
func (o *options) newService(notify func(extract.Report)) (*preview.Service, *extract.Pool, error) {
	if err := o.cfg.EnsurePaths(); err != nil {
		return nil, nil, err
	}
	logger := logging.L()
	pool := extract.NewPool(o.cfg.WorkerCount())
	schedOpts := []extract.Option{extract.WithLogger(logger.Named("extract"))}
	if notify != nil {
		schedOpts = append(schedOpts, extract.WithNotify(notify))
	}
	sched := extract.NewScheduler(pool, o.cfg.Paths.Staging, schedOpts...)
	logger.Debug("extraction pool started",
		zap.Int("workers", o.cfg.WorkerCount()),
		zap.String("staging", o.cfg.Paths.Staging),
	)
	return preview.NewService(sched, o.cfg.Extract.FallbackCharset, logger.Named("preview")), pool, nil
}

// NewRootCmd creates and returns the root cobra command for the arpv CLI.
// It sets up all subcommands, command groups, and persistent flags.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "arpv",
		Short: "arpv - browse zip and rar uploads as directory trees",
		Long: `arpv turns uploaded zip and rar archives into navigable directory trees.

The tree is returned immediately; the archive's files are extracted in the
background into a flat staging directory under synthesized names, after which
the uploaded archive is deleted.

Use subcommands to perform different operations:
  - preview: Print the tree of an archive and stage its files
  - serve: Serve previews and metrics over HTTP
  - mount: Mount an archive's tree as a read-only filesystem
  - validate: Check that archives can be previewed
  - count: Count staged files
  - seed: Generate a sample archive`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to arpv.yaml (default $ARPV_CONFIG)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "console", "Log format: console or json")
	pf.StringVar(&opts.stagingDir, "staging-dir", "", "Directory extracted files are written to")
	pf.IntVar(&opts.workers, "workers", 0, "Extraction workers (0 = one per CPU)")

	groupPreview := "preview"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupPreview,
		Title: "Preview Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	previewCmd := NewPreviewCmd(opts)
	serveCmd := NewServeCmd(opts)
	mountCmd := NewMountCmd(opts)
	validateCmd := NewValidateCmd(opts)
	countCmd := NewCountCmd(opts)
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	previewCmd.GroupID = groupPreview
	serveCmd.GroupID = groupPreview
	mountCmd.GroupID = groupPreview
	validateCmd.GroupID = groupUtilities
	countCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(previewCmd, serveCmd, mountCmd, validateCmd, countCmd, seedCmd, versionCmd)

	return rootCmd
}

// NewVersionCmd prints build metadata.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.Fprint(cmd.OutOrStdout(), "arpv")
		},
	}
}
