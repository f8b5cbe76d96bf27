package main

import (
	"os"

	"github.com/xichen1997/stronger-llama/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
