package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fyntora/fyn/internal/cli"
	"github.com/fyntora/fyn/internal/models"
	"github.com/sirupsen/logrus"
)

func main() {
	// Setup logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// The first signal cancels the run; a second one gets the default behavior
	context.AfterFunc(ctx, stop)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !models.Reported(err) {
		logrus.Error(err)
	}
	os.Exit(models.ExitCode(err))
}
