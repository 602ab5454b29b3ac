// Package logs reads the daemon's log files for the CLI.
//
// Tail returns the last lines of a log file with bounded memory usage
// and reports the file offset it stopped at, so follow mode can poll
// for new lines without rereading the whole file.
package logs
