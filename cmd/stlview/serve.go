package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/host"
	"github.com/Carmen-Shannon/oxy-stl/engine/settings"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	addr       string
	configPath string
	fps        float64
	verbose    bool
	debug      bool
	quiet      bool
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve <model.stl>",
		Short: "Serve a viewer for an STL file and follow changes to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "viewer config file (TOML)")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "drive frames from the server at this rate instead of the page")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log info messages")
	cmd.Flags().BoolVar(&opts.debug, "vv", false, "log debug messages")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "log errors only")
	return cmd
}

func runServe(cmd *cobra.Command, path string, opts serveOptions) error {
	logger := common.NewWriterLogger(cmd.ErrOrStderr(), "stlview", common.LevelFromFlags(opts.debug, opts.verbose, opts.quiet))

	cfg, err := settings.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	srv, err := host.NewServer(path,
		host.WithLogger(logger),
		host.WithConfig(cfg),
		host.WithFrameRate(opts.fps),
	)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx := cmd.Context()
	go func() {
		if err := srv.Watch(ctx); err != nil {
			logger.Errorf("not following %s: %v", srv.Path(), err)
		}
	}()

	httpServer := &http.Server{Addr: opts.addr, Handler: srv, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Infof("serving %s on http://localhost%s", srv.Path(), opts.addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
