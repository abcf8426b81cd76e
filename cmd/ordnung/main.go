package main

import (
	"os"

	"ordnung/internal/log"
)

func main() {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	log.Close()
	if err != nil {
		os.Exit(1)
	}
}
