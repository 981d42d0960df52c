package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeServer struct {
	addr string

	listenErr   error
	shutdownErr error

	// listening is closed once ListenAndServe has been entered, so tests
	// can order a signal after the listener goroutine is running.
	listening chan struct{}

	mu             sync.Mutex
	listenCalled   bool
	shutdownCalled bool
	closeCalled    bool
}

func newFakeServer(addr string) *fakeServer {
	return &fakeServer{addr: addr, listening: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.mu.Lock()
	f.listenCalled = true
	f.mu.Unlock()
	close(f.listening)
	return f.listenErr
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	f.shutdownCalled = true
	f.mu.Unlock()
	return f.shutdownErr
}

func (f *fakeServer) Close() error {
	f.mu.Lock()
	f.closeCalled = true
	f.mu.Unlock()
	return nil
}

func (f *fakeServer) Addr() string { return f.addr }

func (f *fakeServer) calls() (listen, shutdown, closed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listenCalled, f.shutdownCalled, f.closeCalled
}

// runAfterListen starts Run, waits for the fake server to begin listening,
// delivers the signal, and returns Run's exit code.
func runAfterListen(t *testing.T, build serverBuilder, fs *fakeServer, sigCh chan os.Signal) int {
	t.Helper()

	done := make(chan int, 1)
	go func() { done <- Run(build, sigCh, zerolog.Nop()) }()

	select {
	case <-fs.listening:
	case <-time.After(5 * time.Second):
		t.Fatalf("server never started listening")
	}
	sigCh <- os.Interrupt

	select {
	case code := <-done:
		return code
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after signal")
		return -1
	}
}

func TestRun_BootstrapFail_Returns1(t *testing.T) {
	sigCh := make(chan os.Signal, 1)

	build := func() (httpServer, func(), error) {
		return nil, func() {}, errors.New("boom")
	}

	if got := Run(build, sigCh, zerolog.Nop()); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestRun_OnSignal_ShutdownAndReturn0(t *testing.T) {
	sigCh := make(chan os.Signal, 1)

	fs := newFakeServer(":0")
	fs.listenErr = http.ErrServerClosed

	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return fs, func() { cleanupCalled = true }, nil
	}

	if got := runAfterListen(t, build, fs, sigCh); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}

	listen, shutdown, closed := fs.calls()
	if !listen || !shutdown {
		t.Fatalf("expected listen and shutdown to be called")
	}
	if closed {
		t.Fatalf("did not expect Close on graceful shutdown")
	}
	if !cleanupCalled {
		t.Fatalf("expected cleanup called")
	}
}

func TestRun_OnServerCrash_Return1(t *testing.T) {
	sigCh := make(chan os.Signal, 1)

	fs := newFakeServer(":0")
	fs.listenErr = errors.New("crash")

	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return fs, func() { cleanupCalled = true }, nil
	}

	if got := Run(build, sigCh, zerolog.Nop()); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if _, shutdown, _ := fs.calls(); shutdown {
		t.Fatalf("did not expect Shutdown on crash path")
	}
	if !cleanupCalled {
		t.Fatalf("expected cleanup called")
	}
}

func TestRun_ShutdownFail_ForcesClose(t *testing.T) {
	sigCh := make(chan os.Signal, 1)

	fs := newFakeServer(":0")
	fs.listenErr = http.ErrServerClosed
	fs.shutdownErr = errors.New("shutdown failed")

	build := func() (httpServer, func(), error) {
		return fs, func() {}, nil
	}

	_ = runAfterListen(t, build, fs, sigCh)

	if _, shutdown, closed := fs.calls(); !shutdown || !closed {
		t.Fatalf("expected Shutdown then Close on failed graceful shutdown")
	}
}
