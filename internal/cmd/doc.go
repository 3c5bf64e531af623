// Package cmd provides the command-line interface implementation for arpv.
//
// Each subcommand lives in its own file with a constructor returning a
// *cobra.Command. The root command resolves configuration (defaults, YAML
// file, ARPV_* environment, then flags) and initializes logging before any
// subcommand runs; subcommands receive the result through a shared options
// value.
//
// Commands:
//   - preview: print the tree of an archive and stage its files
//   - serve: HTTP previews plus Prometheus metrics
//   - mount: read-only FUSE view of an archive's tree
//   - validate: check that archives can be previewed
//   - count: count staged files
//   - seed: generate a sample archive
//   - version: print build metadata
package cmd
