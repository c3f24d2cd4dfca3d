package main

import (
	"os"

	"github.com/thenoetrevino/dragboard/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
