// Command jsi runs the interpreter from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/echosoar/jsi-sub000/cmd/jsi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
