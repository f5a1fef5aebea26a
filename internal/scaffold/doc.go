// Package scaffold plans where a new project goes and materializes a
// template directory there. Materialization is a byte-for-byte recursive
// copy; a failure part way through leaves the partial destination on disk.
package scaffold
