package main

import (
	"os"

	"github.com/cropxr/drivectl/cmd"
	"github.com/cropxr/drivectl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
