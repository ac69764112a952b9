package app

import (
	"fmt"
	"io"

	"github.com/askiada/rangler/internal/config"
)

const commandUsage = `Usage: rangler [flags] [commands]
    filter <regex>     excludes lines that do not match
    append <text>      appends the text to every line
    prepend <text>     prepends the text to every line
    trim               removes whitespace at both ends of every line
    lower              converts letters to lower case
    upper              converts letters to upper case
    dedupe             drops lines already seen at this point of the pipeline

Lines are read from standard input and written to standard output.`

// Usage returns the help text of the command line.
func Usage() string {
	return commandUsage + "\n\nFlags:\n" + config.FlagUsages()
}

func printError(wrt io.Writer, err error) {
	fmt.Fprintf(wrt, "Error: %s\n\n%s", err, Usage())
}
