package main

import (
	"fmt"
	"os"

	"quantumdeck/internal/version"
)

func main() {
	// Minimal CLI entrypoint for QuantumDeck.
	// For now, it prints a banner and an optional version.
	args := os.Args
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		}
	}

	fmt.Println("QuantumDeck — slide deck editor")
	fmt.Printf("Version: %s\n", version.String())
}
