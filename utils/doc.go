// Package utils provides display helpers shared by the CLI and the HTTP server.
//
// It contains:
//   - Distance formatting for run statistics and instruction panels
//   - Elapsed time and pace formatting
//   - ISO8601 date helpers
package utils
