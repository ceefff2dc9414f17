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
	"go.uber.org/zap"

	"bizsite/auth"
	"bizsite/content"
	"bizsite/crypto"
	"bizsite/handlers"
)

var listenPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Serve the public content endpoint and the admin API until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "Listen port (overrides listen_port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if listenPort != 0 {
		cfg.ListenPort = listenPort
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	cookies := auth.NewCookieStore(cfg.SessionKey, cfg.SecureCookies, cfg.SessionTTL())
	h := handlers.New(st.creds, st.content, cookies, logger, handlers.Options{RequireCaptcha: cfg.RequireCaptcha})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pick up edits made through the CLI or by another instance.
	watcher := content.NewWatcher(st.content, cfg.PollInterval(), logger)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		watcher.Run(ctx, func(c content.BusinessConfig) {
			logger.Info("Site content loaded", zap.String("company", c.Company.Name))
		})
	}()
	defer func() {
		stop()
		<-watchDone
	}()

	addr := fmt.Sprintf("%s:%d", cfg.ListenIP, cfg.ListenPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Routes(crypto.ServerKey(cfg.SessionKey, "csrf"), cfg.SecureCookies),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("Server starting", zap.String("addr", addr), zap.String("app", cfg.AppName))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
