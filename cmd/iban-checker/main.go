package main

import (
	"os"

	"github.com/deppfellow/iban-checker/cmd/iban-checker/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
