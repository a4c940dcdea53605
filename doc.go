// Package logsim compresses large volumes of semi-structured textual log
// lines into a self-describing binary container and answers structured
// queries (by severity, IPv4 address, and timestamp range) directly
// against that container without fully reconstructing the log stream.
//
// Compress builds a container from a slice of lines; Open reconstructs a
// queryable Container from previously-written bytes. Filter and Count
// operate against an opened Container with predicate pushdown and column
// pruning: a query never decodes a column it doesn't need.
package logsim
