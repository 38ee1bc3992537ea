// Command rpath evaluates rpath plans on graphs from the command line.
package main

import (
	"os"

	"github.com/roach88/rpath/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:], os.Stdout, os.Stderr))
}
