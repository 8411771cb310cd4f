package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"golist/config"
	"golist/storage"
	"golist/web"
)

var (
	servePort   int
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local import/export HTTP API",
	Long: `Start a local HTTP server exposing the product import/export API.

Endpoints:
- POST /api/import        import a delimited product file
- GET  /api/export        download a cpi/baselinker/ebay CSV feed
- GET  /api/products      list stored products
- GET  /api/products/{id} fetch one product
- GET  /api/health        liveness plus product count`,
	Example: `
  # Start on the default port
  golist serve

  # Custom port and database
  golist serve --port 9090 --db ./golist.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(serveDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		server := &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", servePort),
			Handler:           web.NewServer(store, *cfg),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()
		fmt.Printf("Serving on http://%s\n", server.Addr)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-stop:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "./golist.db", "SQLite database path")
}
