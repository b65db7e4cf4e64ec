// template creates the standard ML project skeleton in the current directory
// and prints the next steps.
package main

import (
	"fmt"
	"os"

	"github.com/Vilsol/mlbox/pkg/app"
	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/Vilsol/mlbox/pkg/logging/slog"
	"github.com/Vilsol/mlbox/pkg/logging/tint"
	"github.com/Vilsol/mlbox/pkg/scaffold"
	"github.com/samber/oops"
)

func main() {
	runtime := app.NewRuntime(
		// Config module MUST be first
		config.NewModule(
			config.WithArgs(os.Args[1:]),
		),

		tint.NewModule(),
		slog.NewModule(),
		scaffold.NewModule(),
	)

	if err := runtime.Run(); err != nil {
		if oopsErr, ok := oops.AsOops(err); ok && oopsErr.Hint() != "" {
			fmt.Fprintln(os.Stderr, "hint:", oopsErr.Hint())
		}
		os.Exit(1)
	}
}
