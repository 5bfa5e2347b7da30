package main

import (
	"os"

	"warsztat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
