// Package pagination implements the --limit/--offset and --page/--page-size
// flags used by listing commands.
package pagination
