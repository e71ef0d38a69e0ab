package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edjchapman/ecdocs"
	"github.com/edjchapman/ecdocs/theme"
)

func runServe() error {
	secret := os.Getenv("ECDOCS_SESSION_SECRET")
	if secret == "" {
		return fmt.Errorf("required environment variable ECDOCS_SESSION_SECRET is not set")
	}

	cfg := ecdocs.SiteConfig{
		Addr:          ecdocs.EnvOr("ECDOCS_ADDR", ":3000"),
		ContentDir:    ecdocs.EnvOr("ECDOCS_CONTENT", "pages"),
		DatabasePath:  ecdocs.EnvOr("ECDOCS_DB", "data/pages.db"),
		SessionSecret: secret,
		CookieSecure:  os.Getenv("ECDOCS_COOKIE_SECURE") == "true",
	}

	opts := []ecdocs.Option{ecdocs.WithStaticDir(ecdocs.EnvOr("ECDOCS_STATIC", "public"))}
	if path := os.Getenv("ECDOCS_THEME"); path != "" {
		s, err := theme.Load(path)
		if err != nil {
			return err
		}
		opts = append(opts, ecdocs.WithTheme(s))
	}

	app := ecdocs.New(cfg, opts...)
	defer app.Close()
	// Setup must return before Shutdown can be called.
	if err := app.Setup(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		errc <- app.Serve()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case s := <-sig:
		log.Printf("ecdocs: received %s, shutting down", s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
