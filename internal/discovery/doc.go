// Package discovery walks source roots and turns every supported file into declaration records.
//
// # Overview
//
// A [Discovery] is configured with builder methods and then run in one of two ways:
//
//   - [Discovery.Find] returns a lazy sequence. Files are walked in lexical order and parsed one
//     at a time as the caller pulls records; breaking out of the loop stops the walk.
//
//   - [Discovery.Discover] walks the roots up front, parses the files in parallel bounded by the
//     worker count and returns every record in the same order Find would yield them.
//
// Both store each record they produce in the configured [declaration.Index] so predicates that
// need to resolve ancestors can look them up.
//
// # Skipped input
//
// Hidden directories, vendor and node_modules are skipped unless [Discovery.WithHidden] is set.
// Paths matching an exclude glob are skipped; a matching directory prunes its whole subtree.
// A file that cannot be read or parsed is logged at debug level and skipped, never surfaced as
// an error. Roots that do not exist are a [RootError], reported before any file is read.
package discovery
