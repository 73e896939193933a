package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskhub/internal/client/cli"
	"github.com/dmitrijs2005/taskhub/internal/client/config"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := cli.NewRootCommand(cfg, os.Stdin, os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
