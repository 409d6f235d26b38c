package serverapp

import (
	"fmt"
	"log/slog"
	"os"
)

// Stop reasons reported by WaitForStop.
const (
	stopReasonSignal      = "signal"
	stopReasonServerError = "server_error"
)

// Start launches the HTTP listener goroutine. Init must have completed;
// calling Start again returns the channel from the first call.
func (a *App) Start() (<-chan error, error) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()

	if !a.initialized {
		return nil, fmt.Errorf("app is not initialized")
	}
	if !a.started {
		a.serverErrors = startServer(a.cfg, a.logger, a.srv, a.serverAddr)
		a.started = true
	}
	return a.serverErrors, nil
}

// WaitForStop blocks until an OS signal arrives or the server reports an
// error, whichever comes first, and reports which one it was. A nil
// channel disables that side of the wait.
func (a *App) WaitForStop(stop <-chan os.Signal, serverErrors <-chan error) (reason string, err error) {
	if serverErrors == nil {
		a.stateMu.Lock()
		serverErrors = a.serverErrors
		a.stateMu.Unlock()
	}

	switch {
	case stop == nil && serverErrors == nil:
		return "", fmt.Errorf("both stop and serverErrors channels are nil")
	case stop == nil:
		return a.stopOnServerError(<-serverErrors)
	case serverErrors == nil:
		return a.stopOnSignal(<-stop)
	}

	select {
	case err := <-serverErrors:
		return a.stopOnServerError(err)
	case sig := <-stop:
		return a.stopOnSignal(sig)
	}
}

func (a *App) stopOnSignal(sig os.Signal) (string, error) {
	if a.logger != nil {
		a.logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}
	return stopReasonSignal, nil
}

func (a *App) stopOnServerError(err error) (string, error) {
	if err == nil {
		// The error channel closed without a value.
		return stopReasonServerError, fmt.Errorf("server stopped unexpectedly")
	}
	return stopReasonServerError, fmt.Errorf("server failed: %w", err)
}
