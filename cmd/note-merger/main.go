package main

import (
	"fmt"
	"os"

	notemerger "github.com/thrawn01/note-merger"
)

func main() {
	if err := notemerger.RunCmd(os.Args, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
