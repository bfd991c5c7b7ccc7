package main

import (
	"os"

	"github.com/arjun/coachfit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
