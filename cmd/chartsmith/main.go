package main

import (
	"log/slog"
	"os"

	"github.com/ChristofferNissen/chartsmith/cmd/cli/commands"
)

func main() {
	// invoke program and handle error
	err := commands.Execute()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
