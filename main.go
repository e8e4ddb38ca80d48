package main

import (
	"os"

	"github.com/nishanthcgit/haystack-website/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
