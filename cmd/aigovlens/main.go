// Command aigovlens evaluates one AI use case against governance risk
// criteria and writes the two artifacts: a PDF report and a JSON
// export.
//
// Usage:
//
//	aigovlens -config pipeline.yaml -input usecase.json -out ./artifacts
//
// The input file is a JSON use case record; the provider API key is
// read from the environment variable named in the configuration.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/parul-khanna/aigovlens/internal/application"
	"github.com/parul-khanna/aigovlens/internal/domain"
)

func main() {
	var (
		configPath = flag.String("config", "pipeline.yaml", "Pipeline configuration file")
		inputPath  = flag.String("input", "", "Use case record JSON file (required)")
		outputDir  = flag.String("out", ".", "Directory for generated artifacts")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *inputPath, *outputDir); err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}
}

func run(configPath, inputPath, outputDir string) error {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	config, err := application.LoadPipelineConfig(configData)
	if err != nil {
		return err
	}

	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read use case: %w", err)
	}
	var record domain.UseCaseRecord
	if err := json.Unmarshal(inputData, &record); err != nil {
		return fmt.Errorf("failed to parse use case: %w", err)
	}

	pipeline, err := application.NewPipelineFromConfig(config)
	if err != nil {
		return err
	}

	artifacts, err := pipeline.Run(context.Background(), record)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	reportPath := filepath.Join(outputDir, artifacts.ReportFilename)
	if err := os.WriteFile(reportPath, artifacts.Report, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	exportPath := filepath.Join(outputDir, artifacts.ExportFilename)
	if err := os.WriteFile(exportPath, artifacts.Export, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Evaluation complete:\n")
	fmt.Printf("- Overall score: %d/100\n", artifacts.Result.OverallScore)
	fmt.Printf("- Risk level: %s\n", artifacts.Result.RiskLevel)
	fmt.Printf("- Report: %s\n", reportPath)
	fmt.Printf("- Export: %s\n", exportPath)
	return nil
}
