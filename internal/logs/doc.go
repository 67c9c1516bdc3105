// Package logs reads the batch log file for the CLI.
//
// Tail returns the last lines of the log, optionally filtered, and Follow
// keeps polling from an offset until new lines arrive or the context ends.
package logs
