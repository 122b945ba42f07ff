//go:build console

package main

import (
	"fmt"

	"go.uber.org/zap"
)

// runEmbeddedUI is a stub for console-only builds
func runEmbeddedUI(settings *Settings, logger *zap.Logger) error {
	return fmt.Errorf("embedded UI not available in console build. Use -web flag for external browser mode")
}

// runGUI is a stub for console-only builds
func runGUI(settings *Settings, logger *zap.Logger) error {
	return fmt.Errorf("GUI not available in console build. Use -web flag for external browser mode")
}
