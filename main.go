package main

import (
	"os"

	"github.com/goodguide/repokeeper/cmd/cli"
)

func main() {
	if executionError := cli.Execute(); executionError != nil {
		os.Exit(1)
	}
}
