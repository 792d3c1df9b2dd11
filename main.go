// Command gosearch recursively searches a source tree for a term and prints
// every matching line, grouped by file.
package main

import (
	"os"

	"github.com/vennictus/gosearch/internal/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:], os.Stdout, os.Stderr))
}
