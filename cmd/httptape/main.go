// httptape CLI - inspect and maintain HTTP tape directories.
package main

import (
	"os"

	"github.com/httptape/httptape/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
