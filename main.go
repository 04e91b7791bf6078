package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/goldyfruit/opsview-inventory/cmd"
	"github.com/goldyfruit/opsview-inventory/internal/exit"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	root := cmd.NewRootCmd()
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		exitCode := 1
		var exitErr *exit.Error
		if errors.As(err, &exitErr) {
			exitCode = exitErr.Code
			if exitErr.Silent() {
				os.Exit(exitCode)
			}
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode)
	}
}
