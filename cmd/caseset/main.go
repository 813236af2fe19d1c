// Command caseset compiles CUE enum declarations and evaluates lookup and
// collection queries against them.
package main

import (
	"os"

	"github.com/roach88/caseset/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
