// Package util provides the small filesystem helpers the preview pipeline
// leans on.
//
// Key Components:
//
// Path Handling:
//   - BaseName extracts the final path segment regardless of whether the
//     path uses forward or back slashes
//
// Charset Detection:
//   - DetectCharset sniffs a UTF-8 byte-order mark from the first bytes of a
//     file and otherwise resolves a named fallback charset
//
// Upload Staging:
//   - CopyToUploadDir copies an archive into a private upload directory so
//     that the preview pipeline can consume (and delete) the copy
//
// Archive Fixtures:
//   - ZipDirectory packs a directory tree into a zip archive, used by the
//     seed command and by tests
//
// Inodes:
//   - GetNewInode hands out process-unique inode numbers for the FUSE view
package util
