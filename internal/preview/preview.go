// Package preview serves a standalone export over local HTTP so a deck can
// be played without unzipping it.
package preview

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/archive"
)

// Handler serves the entries of a standalone export. The player is served
// at "/".
func Handler(export []byte) (http.Handler, error) {
	zr, err := zip.NewReader(bytes.NewReader(export), int64(len(export)))
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	f, err := zr.Open(archive.IndexEntry)
	if err != nil {
		return nil, fmt.Errorf("export has no %s", archive.IndexEntry)
	}
	f.Close()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Handle("/*", http.FileServer(http.FS(zr)))
	return r, nil
}

// Serve listens on port until ctx is cancelled. When open is set the
// player is opened in the default browser.
func Serve(ctx context.Context, port int, handler http.Handler, open bool, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d/", port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if open {
		go openBrowser(url)
	}
	logger.Info("serving deck preview", zap.String("url", url))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
