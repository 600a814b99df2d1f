package main

import (
	"os"

	"langid/cmd/langid/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
