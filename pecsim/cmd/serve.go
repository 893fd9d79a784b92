package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/sarchlab/pnvpec/monitoring"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the monitoring interface until interrupted.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	flags := serveCmd.Flags()
	flags.Int("port", envInt(envMonitorPort, 0),
		"Port to listen on, 0 picks a free one")
	flags.Bool("open", false, "Open the monitoring page in a browser")

	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetInt("port")
	open, _ := cmd.Flags().GetBool("open")

	monitor := monitoring.NewMonitor().WithPortNumber(port)

	m, err := buildMachine(cmd, monitor)
	if err != nil {
		return err
	}
	defer m.Terminate()

	actualPort := monitor.StartServer()

	if open {
		url := fmt.Sprintf("http://localhost:%d", actualPort)
		if err := browser.OpenURL(url); err != nil {
			warn("cannot open %s: %v", url, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	return nil
}
