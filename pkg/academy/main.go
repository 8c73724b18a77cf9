package academy

import (
	"context"
	"fmt"

	"github.com/colorbulb/nexteliteweb2/pkg/logger"
)

// Main parses args and runs the selected command. It is called by
// cmd/academy and can be called directly from tests.
func Main(ctx context.Context, args []string) error {
	cmd, config, err := Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	logData, err := logger.New().WithLevel(config.LogLevel).FromPath(config.LogFile).Make()
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer logData.Close()

	app, err := New(ctx, config, logData.Logger)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close(context.WithoutCancel(ctx))

	switch c := cmd.(type) {
	case *RunCommand:
		if err := app.Run(ctx, c); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case *SeedCommand:
		if err := app.Seed(ctx, c); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	case *ExportCommand:
		if err := app.Export(ctx, c); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	case *MirrorCommand:
		if err := app.Mirror(ctx, c); err != nil {
			return fmt.Errorf("mirror failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
	return nil
}
