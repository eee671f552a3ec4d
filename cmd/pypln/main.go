package main

import (
	"os"

	"github.com/namd/pypln-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
