// Command octozek is the operator CLI for the quoting service.
package main

import (
	"os"

	"github.com/Simplici0/octozek/cmd/octozek/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
