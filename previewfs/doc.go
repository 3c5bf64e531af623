// Package previewfs serves a preview tree as a read-only FUSE filesystem.
//
// Directories mirror the archive layout rebuilt by package tree. File
// contents come from the flat staging directory, where each member is stored
// under its synthesized key; a file whose extraction has not finished yet
// reads as missing.
//
// The filesystem is mounted with bazil.org/fuse; see `arpv mount`.
package previewfs
