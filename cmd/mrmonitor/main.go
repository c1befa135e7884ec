package main

import (
	"fmt"
	"os"

	"github.com/meesha7/mrmonitor/internal/cli"
)

func main() {
	root := cli.NewRootCommand(cli.DefaultDependencies())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
