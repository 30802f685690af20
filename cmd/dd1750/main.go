package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/bomtools/dd1750/internal/bom"
	"github.com/bomtools/dd1750/internal/config"
	"github.com/bomtools/dd1750/internal/form"
	"github.com/bomtools/dd1750/internal/packing"
	"github.com/bomtools/dd1750/internal/review"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	if cfg.Debug {
		logger.Debug("starting", zap.String("config", cfg.String()))
	}

	svc := packing.NewService(cfg.MaxFileSize, cfg.TemplatePath, logger)

	if err := run(cfg, svc, logger); err != nil {
		logger.Fatal("run failed", zap.String("mode", cfg.Mode), zap.Error(err))
	}
}

// newLogger builds the CLI logger: JSON production output by default, the
// human-readable development encoder under --debug.
func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.Debug {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func run(cfg *config.Config, svc *packing.Service, logger *zap.Logger) error {
	switch {
	case cfg.IsFormatsMode():
		return runFormats()
	case cfg.IsExtractMode():
		return runExtract(cfg, svc)
	case cfg.IsGenerateMode():
		return runGenerate(cfg, svc, logger)
	default:
		return runConvert(cfg, svc)
	}
}

// runConvert extracts and generates in one shot.
func runConvert(cfg *config.Config, svc *packing.Service) error {
	result, err := svc.ConvertFile(packing.ConvertFileRequest{
		Path:       cfg.Input,
		OutputPath: cfg.Output,
		StartPage:  cfg.StartPage,
		Header:     headerFromConfig(cfg),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d items across %d pages\n", result.OutputPath, result.Items, result.Pages)
	return nil
}

// runExtract writes the review session as JSON, or as an XLSX workbook when
// the output path says so. No output path means stdout.
func runExtract(cfg *config.Config, svc *packing.Service) error {
	result, err := svc.ExtractFile(packing.ExtractFileRequest{
		Path:      cfg.Input,
		StartPage: cfg.StartPage,
	})
	if err != nil {
		return err
	}
	session := result.Session

	if cfg.Output == "" {
		return session.Export(os.Stdout)
	}

	if strings.EqualFold(filepath.Ext(cfg.Output), ".xlsx") {
		data, err := session.ExportXLSX()
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	} else {
		out, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
		defer out.Close()
		if err := session.Export(out); err != nil {
			return err
		}
	}

	fmt.Printf("Extracted %d items to %s\n", session.ItemCount, cfg.Output)
	return nil
}

// runGenerate renders a reviewed session file onto the form template.
func runGenerate(cfg *config.Config, svc *packing.Service, logger *zap.Logger) error {
	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to open session file: %w", err)
	}
	defer in.Close()

	session, err := review.Import(in)
	if err != nil {
		return err
	}
	if session.ItemCount == 0 {
		logger.Warn("session has no items; generating a blank form",
			zap.String("session_id", session.ID))
	}

	result, err := svc.GenerateFromSession(session, headerFromConfig(cfg), cfg.Output)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d items across %d pages\n", result.OutputPath, result.Items, result.Pages)
	return nil
}

// runFormats lists the recognized BOM layouts as JSON.
func runFormats() error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(bom.SupportedFormats())
}

func headerFromConfig(cfg *config.Config) form.HeaderInfo {
	return form.HeaderInfo{
		PackedBy:      cfg.PackedBy,
		NumBoxes:      cfg.Boxes,
		RequisitionNo: cfg.Requisition,
		OrderNo:       cfg.Order,
		EndItem:       cfg.EndItem,
		Date:          cfg.Date,
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("DD Form 1750 Generator\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
