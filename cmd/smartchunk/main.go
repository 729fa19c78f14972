package main

import (
	"os"

	"github.com/bububa/smart-chunker/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
