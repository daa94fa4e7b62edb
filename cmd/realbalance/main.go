package main

import (
	"os"

	"github.com/wonny/realbalance/cmd/realbalance/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
