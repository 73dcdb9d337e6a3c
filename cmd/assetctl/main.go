// assetctl - служебная утилита: миграции, сиды, хеширование паролей и импорт активов.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"asset-desk/pkg/config"
	applogger "asset-desk/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app - зависимости, общие для всех подкоманд.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "assetctl",
		Short:         "Asset desk maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.New()
			a.logger = applogger.NewLogger(a.cfg.Log)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	cmd.AddCommand(
		migrateCmd(a),
		seedCmd(a),
		hashPasswordCmd(),
		importAssetsCmd(a),
	)
	return cmd
}
