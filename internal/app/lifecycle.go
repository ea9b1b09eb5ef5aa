package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"migguard.io/guard/internal/pkg/logger"
)

// Run checks the repository at root, writes the report to w and returns the
// process exit code. An error means no verdict could be rendered.
func (a *Application) Run(ctx context.Context, root string, w io.Writer) (int, error) {
	rep, err := a.Check.Execute(ctx, root)
	if err != nil {
		return 0, err
	}

	if err := a.Renderer.Render(w, rep); err != nil {
		return 0, fmt.Errorf("render report: %w", err)
	}

	logger.Debug("Guard run finished",
		zap.String("run_id", rep.RunID),
		zap.String("outcome", string(rep.Outcome)),
		zap.Int("exit_code", rep.ExitCode()),
	)
	return rep.ExitCode(), nil
}
