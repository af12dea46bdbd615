package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	helpdeskmux "github.com/fwojciec/helpdesk/mux"
)

// ShutdownTimeout bounds how long serve waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := helpdeskmux.NewServer(deps.Asker, deps.Logger)
	srv.Readiness = deps.Index
	srv.Documents = deps.Index
	if deps.Footer != "" {
		srv.Footer = deps.Footer
	}
	if c.AskTimeout > 0 {
		srv.AskTimeout = c.AskTimeout
	}

	ln := deps.Listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", c.Addr); err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot listen on %s\n", c.Addr)
			return err
		}
	}

	httpServer := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if c.Warm {
		go func() {
			if err := deps.Index.Warm(deps.Ctx); err != nil {
				deps.Logger.Error("warm index", "err", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() { errc <- httpServer.Serve(ln) }()
	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", ln.Addr())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-deps.Ctx.Done():
	}

	deps.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.WithoutCancel(deps.Ctx), ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
