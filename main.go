package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Lifespan Forecast

Estimates life expectancy from about thirty lifestyle answers (diet, exercise,
sleep, habits). Each answer maps to a published change in all-cause mortality
(ACM); the changes are summed, converted into years, applied to the average
lifespan for your sex and capped to realistic human limits. The report lists
the factors that matter most, what to improve, and habits worth adopting.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                               Embedded window (webview)
  %s -console                      Console report (asks questions if no profile)
  %s -profile me.yaml -html        Console report plus HTML report
  %s -profile me.yaml -pdf -json   PDF and JSON reports
  %s -profile me.yaml -what-if     Which single change adds the most years
  %s -web -addr :8080              Web server on a specific port

Settings:
  Optional YAML file (see settings.yaml). Every key can be overridden with
  LIFESPAN_* environment variables, e.g. LIFESPAN_LIMITS_REALISTIC_MAX=110.
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	profileFile := flag.String("profile", "profile.yaml", "Path to YAML profile (created interactively if missing)")
	settingsFile := flag.String("settings", "", "Path to YAML settings file")
	generateHTML := flag.Bool("html", false, "Write an HTML report and open it in the browser")
	generatePDF := flag.Bool("pdf", false, "Write a PDF report")
	generateJSON := flag.Bool("json", false, "Write the report as JSON")
	whatIf := flag.Bool("what-if", false, "Show which single change adds the most years and write a what-if HTML matrix")
	consoleMode := flag.Bool("console", false, "Use console interface instead of GUI (default is GUI)")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webAddr := flag.String("addr", "", "Web server address (overrides server.addr, use :0 for auto port)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides app.log_level)")
	flag.Parse()

	settings, err := LoadSettings(*settingsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	if *webAddr != "" {
		settings.Server.Addr = *webAddr
	}

	useConsole := *consoleMode || *generateHTML || *generatePDF || *generateJSON || *whatIf

	// Console output stays readable unless a level is asked for explicitly
	level := settings.App.LogLevel
	if useConsole && *settingsFile == "" && os.Getenv("LIFESPAN_APP_LOG_LEVEL") == "" {
		level = "warn"
	}
	if *logLevel != "" {
		level = *logLevel
	}
	logger, err := NewLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Embedded browser mode
	if *uiMode {
		if err := runEmbeddedUI(settings, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Embedded UI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Web server mode (external browser)
	if *webMode {
		server := NewWebServer(NewEstimator(settings, logger), settings, logger)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Web server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if useConsole {
		if err := runConsoleMode(*profileFile, settings, logger, reportOptions{html: *generateHTML, pdf: *generatePDF, json: *generateJSON, whatIf: *whatIf}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Default: GUI mode
	if err := runGUI(settings, logger); err != nil {
		fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
		fmt.Println("Falling back to console mode...")
		if err := runConsoleMode(*profileFile, settings, logger, reportOptions{html: *generateHTML, pdf: *generatePDF, json: *generateJSON, whatIf: *whatIf}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// reportOptions selects the report files written after the console report
type reportOptions struct {
	html   bool
	pdf    bool
	json   bool
	whatIf bool
}

// runConsoleMode loads (or interactively builds) the profile, prints the report
// and writes any requested report files
func runConsoleMode(profileFile string, settings *Settings, logger *zap.Logger, opts reportOptions) error {
	estimator := NewEstimator(settings, logger)

	profile, err := LoadProfile(profileFile)
	if errors.Is(err, os.ErrNotExist) {
		builder := NewInteractiveProfileBuilder(estimator.Registry())
		profile = builder.BuildProfile()
		if err := builder.SaveProfile(profileFile); err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}
		fmt.Printf("Profile saved to %s\n", profileFile)
		fmt.Println("You can edit this file to change answers for future runs.")
		fmt.Println()
	} else if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	report, err := estimator.Estimate(profile)
	if err != nil {
		if ve, ok := AsValidationError(err); ok {
			return fmt.Errorf("invalid profile %s: field %q: %w", profileFile, ve.Field, err)
		}
		return err
	}

	PrintReport(os.Stdout, report)

	outputDir := settings.Report.OutputDir
	if opts.whatIf {
		analysis, err := estimator.WhatIf(profile)
		if err != nil {
			return err
		}
		PrintWhatIf(os.Stdout, analysis, settings.Report.TopImpacts)
		path, err := GenerateWhatIfReportInDir(analysis, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("\nWhat-if report: %s\n", path)
	}
	if opts.html {
		path, err := GenerateHTMLReportInDir(report, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("\nHTML report: %s\n", path)
		openBrowser(path)
	}
	if opts.pdf {
		path, err := GeneratePDFReportInDir(report, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("PDF report: %s\n", path)
	}
	if opts.json {
		path, err := writeJSONReport(report, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("JSON report: %s\n", path)
	}
	return nil
}

// writeJSONReport writes report_<timestamp>.json into outputDir
func writeJSONReport(report *Report, outputDir string) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	if outputDir != "." && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	path := filepath.Join(outputDir, fmt.Sprintf("report_%s.json", report.GeneratedAt.Format("2006-01-02_150405")))
	return path, os.WriteFile(path, data, 0644)
}

// openBrowser opens a file or URL with the system handler
func openBrowser(target string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", target)
	default:
		fmt.Fprintf(os.Stderr, "Cannot open browser on %s\n", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}
