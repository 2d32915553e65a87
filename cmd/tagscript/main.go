package main

import (
	"os"

	"github.com/msto63/tagscript/cmd/tagscript/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
