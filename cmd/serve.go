package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docreader/internal/config"
	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/server"
	"github.com/ziadkadry99/docreader/internal/site"
)

const (
	watchDebounce   = 200 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

var (
	servePort      int
	serveOpen      bool
	serveNoWatch   bool
	serveEphemeral bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation site locally",
	Long: `Starts an HTTP server rendering the documentation on demand, with search,
theme and checklist state persisted between sessions. Pages reload in the
browser when a markdown file changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (defaults to server.port from config)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the site in a browser")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not reload when documents change")
	serveCmd.Flags().BoolVar(&serveEphemeral, "ephemeral", false, "keep reader state in memory only")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	store, err := loadDocuments(cfg)
	if err != nil {
		return err
	}
	state, closeState, err := openState(cfg, serveEphemeral)
	if err != nil {
		return err
	}
	defer closeState()

	logger := slog.Default()
	s, err := site.New(store, state, siteOptions(cfg))
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, logger)
	s.RegisterRoutes(srv.Router())

	ctx := cmd.Context()
	if cfg.Server.Watch && !serveNoWatch {
		go watchDocuments(ctx, cfg, s, logger)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	fmt.Printf("Serving %d documents at %s\n", store.Len(), url)
	if serveOpen {
		site.OpenBrowser(url)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// watchDocuments reloads the site whenever the docs directory changes. A
// failed reload keeps the previous documents.
func watchDocuments(ctx context.Context, cfg *config.Config, s *site.Site, logger *slog.Logger) {
	err := docstore.Watch(ctx, cfg.DocsDir, watchDebounce, logger, func() {
		store, err := loadDocuments(cfg)
		if err != nil {
			logger.Warn("reload failed, keeping previous documents", "error", err)
			return
		}
		s.Reload(store)
	})
	if err != nil {
		logger.Error("watching documents", "dir", cfg.DocsDir, "error", err)
	}
}
