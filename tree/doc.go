// Package tree turns the flat entry list of an archive into a navigable
// directory tree.
//
// Entries are sorted shallow-first by SortByPathLength, named by one of the
// two Naming variants (ZipNaming or RarNaming) and folded into a Tree by a
// Builder. The Tree is an arena: nodes live in one slice, children are held
// as indices and parents as key back-references, and a registry maps every
// synthesized key to its node. The synthetic root is registered under the
// empty key.
//
// Synthesized keys double as the on-disk file names used by the extraction
// pipeline, so the naming rules are part of the storage contract and the zip
// and rar variants intentionally differ.
package tree
