package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nishanthcgit/haystack-website/internal/config"
	"github.com/nishanthcgit/haystack-website/internal/progress"
	"github.com/nishanthcgit/haystack-website/internal/server"
	"github.com/nishanthcgit/haystack-website/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with live reload",
	Long: `Builds the site, serves it over HTTP together with the star and outline
APIs, and rebuilds and reloads open pages when the docs change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("watch", false, "rebuild when the docs change (defaults to server.watch)")
	serveCmd.Flags().Bool("open", false, "open the site in a browser")
	rootCmd.AddCommand(serveCmd)
}

// watchEnabled reports whether serve rebuilds on changes. An explicit
// --watch flag wins over server.watch.
func watchEnabled(flags *pflag.FlagSet, cfg *config.Config) bool {
	if flags.Changed("watch") {
		watch, _ := flags.GetBool("watch")
		return watch
	}
	return cfg.Server.Watch
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	watch := watchEnabled(cmd.Flags(), cfg)
	log := slog.Default()

	loader, cache, err := newStarLoader(cfg)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	genOpts := []site.Option{
		site.WithLogger(log),
		site.WithProgress(progress.Nop{}),
		site.WithLiveReload(watch),
	}
	srvOpts := []server.Option{server.WithLogger(log)}
	if loader != nil {
		genOpts = append(genOpts, site.WithStars(loader))
		srvOpts = append(srvOpts, server.WithStars(loader))
	}
	gen := site.NewGenerator(cfg, genOpts...)
	srvOpts = append(srvOpts, server.WithOutliner(gen))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := gen.Generate(ctx); err != nil {
		return err
	}

	hub := server.NewHub(log)
	srvOpts = append(srvOpts, server.WithReloadHub(hub))
	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		SiteDir:  cfg.OutputDir,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, srvOpts...)

	if watch {
		w, err := server.NewWatcher(cfg.DocsDir, func(ctx context.Context) error {
			if _, err := gen.Generate(ctx); err != nil {
				return err
			}
			hub.Broadcast()
			return nil
		}, server.DefaultDebounce, log)
		if err != nil {
			return fmt.Errorf("watching %s: %w", cfg.DocsDir, err)
		}
		defer w.Close()
		go w.Run(ctx)
	}

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d/", cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "docsite %s serving %s at %s\n", Version, cfg.OutputDir, url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		openBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
