package main

import (
	"os"

	"github.com/idilsaglam/todomenu/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
