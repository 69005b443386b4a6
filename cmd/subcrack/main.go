/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for subcrack. Builds the command tree and
runs it, reporting any error on stderr.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/subcrack/cmd/subcrack/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
