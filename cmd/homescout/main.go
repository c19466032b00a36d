// Package main is the entry point for the HomeScout client application.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := bootstrap(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
