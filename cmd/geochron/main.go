package main

import (
	"fmt"
	"os"

	"github.com/uyouii/geochron/cli"
	"go.uber.org/zap"
)

func main() {
	defer zap.L().Sync()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
