// Package main provides the webui command.
package main

import (
	"os"

	"github.com/m1ck43l/web-ui/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
