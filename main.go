package main

import (
	"os"

	"github.com/quant-rishabh/learn-through-quiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
