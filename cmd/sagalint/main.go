package main

import (
	"os"

	"github.com/sagaworks/sagalint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
