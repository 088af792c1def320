// Package main is the entry point for the MutaGate CLI.
package main

import "mutagate.dev/pkg/mutagate/cmd"

func main() {
	cmd.Execute()
}
