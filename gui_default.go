//go:build !console

package main

import (
	"fmt"

	webview "github.com/webview/webview_go"
	"go.uber.org/zap"
)

// runEmbeddedUI starts the web server and opens an embedded browser window
func runEmbeddedUI(settings *Settings, logger *zap.Logger) error {
	// Embedded mode always picks a free local port
	local := *settings
	local.Server.Addr = "localhost:0"

	ws := NewWebServer(NewEstimator(&local, logger), &local, logger)

	url, cleanup, err := ws.StartForEmbedded()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer cleanup()

	// Create webview window (false = no debug mode)
	w := webview.New(false)
	defer w.Destroy()

	w.SetTitle("寿命预测器 Lifespan Forecast")
	w.SetSize(1280, 860, webview.HintNone)
	w.Navigate(url)

	// Run blocks until window is closed
	w.Run()

	return nil
}

// runGUI starts the graphical user interface (uses embedded browser)
func runGUI(settings *Settings, logger *zap.Logger) error {
	return runEmbeddedUI(settings, logger)
}
