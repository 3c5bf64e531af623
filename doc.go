// Package main provides the arpv command-line interface.
//
// arpv turns uploaded zip and rar archives into navigable directory trees for
// a preview UI. The tree is built synchronously; the archive's files are
// extracted in the background into one flat staging directory under
// synthesized names, and the uploaded archive is deleted afterwards.
//
// The binary supports these subcommands:
//   - preview: print an archive's tree and stage its files
//   - serve: serve previews and Prometheus metrics over HTTP
//   - mount: mount an archive's tree read-only with FUSE
//   - validate: check that archives can be previewed
//   - count: count staged files
//   - seed: generate a sample archive
package main
