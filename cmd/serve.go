package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"momo-sms/internal/logger"
	"momo-sms/internal/server"
	"momo-sms/internal/store"
)

var (
	port         int
	apiUsername  string
	apiPassword  string
	serveWorkers int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transaction API over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 8000, "HTTP server port")
	serveCmd.Flags().StringVar(&apiUsername, "username", envOr("MOMO_API_USERNAME", "admin"), "Basic auth username")
	serveCmd.Flags().StringVar(&apiPassword, "password", envOr("MOMO_API_PASSWORD", ""), "Basic auth password")
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 4, "Extraction workers for XML uploads")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if apiPassword == "" {
		return fmt.Errorf("basic auth password is required (--password or MOMO_API_PASSWORD)")
	}

	log := logger.New(logLevel)

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	srv := server.New(st, log, server.Config{
		Username: apiUsername,
		Password: apiPassword,
		Workers:  serveWorkers,
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Str("db", dbPath).Msg("starting server")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
