package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"statuspulse/internal/app"
	"statuspulse/internal/core/health"
	"statuspulse/internal/shared/config"
	"statuspulse/internal/shared/logger"
	"statuspulse/internal/shared/types"
)

var (
	logConf   = config.DefaultLog()
	serveConf = config.DefaultServe()
	probeConf = config.DefaultProbe()

	probeTimeoutSecs uint64
)

var rootCmd = &cobra.Command{
	Use:           "statuspulse",
	Short:         "A minimal TCP status responder",
	Version:       types.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logConf)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept connections and reply with the service status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := app.New(serveConf)

		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-signalCh
			logger.Info().Str("signal", sig.String()).Msg("Shutting down")
			server.Stop()
		}()

		return server.Run()
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether a service is accepting TCP connections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, err := probeTimeout(probeTimeoutSecs)
		if err != nil {
			return err
		}
		probeConf.Timeout = timeout
		if err := health.New().Probe(cmd.Context(), probeConf.Host, probeConf.Port, probeConf.Timeout); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Service is healthy")
		return nil
	},
}

// maxProbeTimeoutSecs 是 time.Duration 能表示的最大整秒数。
const maxProbeTimeoutSecs = uint64(math.MaxInt64 / int64(time.Second))

func probeTimeout(secs uint64) (time.Duration, error) {
	if secs > maxProbeTimeoutSecs {
		return 0, fmt.Errorf("--timeout %d is too large (max %d seconds)", secs, maxProbeTimeoutSecs)
	}
	return time.Duration(secs) * time.Second, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logConf.Level, "log-level", logConf.Level, "log level (debug, info, warn, error)")

	serveCmd.Flags().StringVarP(&serveConf.Host, "host", "H", serveConf.Host, "IP address to bind")
	serveCmd.Flags().Uint16VarP(&serveConf.Port, "port", "p", serveConf.Port, "TCP port to bind")
	serveCmd.Flags().IntVar(&serveConf.MaxConnections, "max-connections", serveConf.MaxConnections, "maximum concurrent connections (0 = unlimited)")
	serveCmd.Flags().DurationVar(&serveConf.ReadTimeout, "read-timeout", serveConf.ReadTimeout, "per-connection read timeout (0 = none)")
	serveCmd.Flags().DurationVar(&serveConf.WriteTimeout, "write-timeout", serveConf.WriteTimeout, "per-connection write timeout (0 = none)")
	serveCmd.Flags().StringVar(&serveConf.MetricsAddr, "metrics-addr", serveConf.MetricsAddr, "address for the prometheus /metrics endpoint (empty = disabled)")

	healthCmd.Flags().StringVarP(&probeConf.Host, "host", "H", probeConf.Host, "host to probe")
	healthCmd.Flags().Uint16VarP(&probeConf.Port, "port", "p", probeConf.Port, "port to probe")
	healthCmd.Flags().Uint64VarP(&probeTimeoutSecs, "timeout", "t", uint64(probeConf.Timeout/time.Second), "timeout in seconds")

	rootCmd.AddCommand(serveCmd, healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
