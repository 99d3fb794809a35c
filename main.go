package main

import (
	"github.com/obsidiansec/auditlens/cmd"
)

// main is the entry point for the auditlens CLI.
func main() {
	cmd.Execute()
}
