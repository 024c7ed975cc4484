package main

import (
	"os"

	"github.com/jhoicas/mypos-admin/internal/interfaces/cli"
)

func main() {
	os.Exit(cli.Execute())
}
