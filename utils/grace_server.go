package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// The server restarts in place on SIGUSR2: the listener fd is passed to a
// forked child at fd 3 and the old process drains and exits. SIGTERM drains
// without forking.

const (
	gracefulEnvKey     = "IS_GRACEFUL"
	gracefulEnvPair    = gracefulEnvKey + "=1"
	gracefulListenerFd = 3

	serverReadTimeout  = 60 * time.Second
	serverWriteTimeout = 60 * time.Second
	drainTimeout       = 30 * time.Second
)

// Server is an http.Server that supports zero-downtime restart.
type Server struct {
	*http.Server

	listener  net.Listener
	inherited bool
	drained   chan struct{}
}

// GraceServer serves handler on addr until a terminating signal arrives.
func GraceServer(addr string, handler http.Handler) error {
	srv := &Server{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  serverReadTimeout,
			WriteTimeout: serverWriteTimeout,
		},
		inherited: os.Getenv(gracefulEnvKey) != "",
		drained:   make(chan struct{}),
	}
	return srv.listenAndServe()
}

func (srv *Server) listenAndServe() error {
	ln, err := srv.listen()
	if err != nil {
		return err
	}
	srv.listener = ln

	go srv.watchSignals()
	err = srv.Serve(ln)
	// Serve returns as soon as the listener closes; wait for inflight
	// requests to finish before letting main exit.
	<-srv.drained
	return err
}

// listen binds a fresh socket, or adopts the inherited one after a restart.
func (srv *Server) listen() (net.Listener, error) {
	if srv.inherited {
		ln, err := net.FileListener(os.NewFile(gracefulListenerFd, ""))
		if err != nil {
			return nil, fmt.Errorf("inherit listener: %w", err)
		}
		return ln, nil
	}
	addr := srv.Addr
	if addr == "" {
		addr = ":http"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return ln, nil
}

func (srv *Server) watchSignals() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGUSR2)

	for sig := range sigs {
		switch sig {
		case syscall.SIGTERM:
			Sugar.Info("SIGTERM received, draining HTTP server")
			srv.drain()
			return
		case syscall.SIGUSR2:
			Sugar.Info("SIGUSR2 received, restarting HTTP server")
			pid, err := srv.forkChild()
			if err != nil {
				Sugar.Errorf("restart failed, old server keeps serving: %v", err)
				continue
			}
			Sugar.Infof("child started pid=%d, draining old server", pid)
			srv.drain()
			return
		}
	}
}

func (srv *Server) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		Sugar.Errorf("HTTP server shutdown: %v", err)
	}
	close(srv.drained)
}

// forkChild re-execs the current binary with the listener socket at fd 3.
func (srv *Server) forkChild() (int, error) {
	tcpLn, ok := srv.listener.(*net.TCPListener)
	if !ok {
		return 0, fmt.Errorf("listener is %T, not *net.TCPListener", srv.listener)
	}
	file, err := tcpLn.File()
	if err != nil {
		return 0, fmt.Errorf("dup listener fd: %w", err)
	}

	env := []string{gracefulEnvPair}
	for _, kv := range os.Environ() {
		if kv != gracefulEnvPair {
			env = append(env, kv)
		}
	}

	pid, err := syscall.ForkExec(os.Args[0], os.Args, &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	})
	if err != nil {
		return 0, fmt.Errorf("forkexec: %w", err)
	}
	return pid, nil
}
