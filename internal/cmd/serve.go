package cmd

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/archive-preview/archive"
	"github.com/dendrascience/archive-preview/internal/logging"
	"github.com/dendrascience/archive-preview/internal/metrics"
	"github.com/dendrascience/archive-preview/preview"
)

// NewServeCmd creates and returns the serve subcommand for the arpv CLI.
func NewServeCmd(opts *options) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve previews and metrics over HTTP",
		Long: `Start an HTTP server exposing:

  GET /preview?path=FILE   JSON tree of an archive inside the upload directory
  GET /metrics             Prometheus metrics
  GET /healthz             liveness probe

Every successful preview stages the archive's files and then deletes the
archive, exactly like the preview command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				opts.cfg.Server.Listen = listen
			}
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context, opts *options) error {
	logger := logging.L().Named("http")
	svc, pool, err := opts.newService(nil)
	if err != nil {
		return err
	}
	defer pool.Close()

	server := &http.Server{
		Addr:              opts.cfg.Server.Listen,
		Handler:           logging.Middleware(logger, newMux(svc, opts.cfg.Paths.Upload)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", server.Addr), zap.String("upload_dir", opts.cfg.Paths.Upload))
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newMux(svc *preview.Service, uploadDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /preview", previewHandler(svc, uploadDir))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	return mux
}

// previewHandler builds the tree of an archive below uploadDir. Paths are
// resolved relative to uploadDir and may not leave it.
func previewHandler(svc *preview.Service, uploadDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := r.URL.Query().Get("path")
		if rel == "" {
			http.Error(w, "missing path parameter", http.StatusBadRequest)
			return
		}
		path := rel
		if !filepath.IsAbs(path) {
			path = filepath.Join(uploadDir, rel)
		}
		if !pathWithin(path, uploadDir) {
			http.Error(w, "path outside the upload directory", http.StatusForbidden)
			return
		}

		data, err := svc.BuildJSON(r.Context(), path)
		if err != nil {
			status := previewStatus(err)
			logging.L().Warn("preview failed", zap.String("path", path), zap.Int("status", status), zap.Error(err))
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
}

func previewStatus(err error) int {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, archive.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, archive.ErrArchiveFormat), errors.Is(err, archive.ErrCorruptArchive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return 499
	}
	return http.StatusInternalServerError
}

// pathWithin reports whether path is dir or lies below it.
func pathWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
