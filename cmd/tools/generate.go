package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lychee-technology/schemagen"
	"github.com/lychee-technology/schemagen/internal"
	"go.uber.org/zap"
)

func runGenerate(args []string) error {
	flags := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		zap.S().Info("Usage: schemagen-tools generate [options]")
		zap.S().Info("")
		zap.S().Info("Options:")
		flags.PrintDefaults()
	}

	modelDir := flags.String("model-dir", "models", "Directory containing model descriptor JSON files")
	configFile := flags.String("config", "", "Path to a generation configuration JSON file (optional)")
	hrefBase := flags.String("href-base", "", "Base URL for $id/$ref values (overridden by config file)")
	modelName := flags.String("model", "", "Generate only this model (defaults to every model in the directory)")
	outputDir := flags.String("out", "", "Directory to write <model>.json documents (defaults to stdout)")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := internal.LoadGenerationConfig(*configFile, *hrefBase)
	if err != nil {
		return err
	}

	registry, err := internal.NewFileModelRegistry(*modelDir)
	if err != nil {
		return err
	}

	factory, err := schemagen.NewFactory(cfg)
	if err != nil {
		return err
	}

	names := registry.ListModels()
	if *modelName != "" {
		names = []string{*modelName}
	}

	for _, name := range names {
		model, err := registry.GetModel(name)
		if err != nil {
			return err
		}
		generator, err := factory.SchemaGenerator(model)
		if err != nil {
			return err
		}
		document, err := generator.GetSchema()
		if err != nil {
			return fmt.Errorf("generate schema for model %q: %w", name, err)
		}

		encoded, err := json.MarshalIndent(document, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal schema for model %q: %w", name, err)
		}

		if *outputDir == "" {
			fmt.Println(string(encoded))
			continue
		}
		if err := os.MkdirAll(*outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		outPath := filepath.Join(*outputDir, name+".json")
		if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
			return fmt.Errorf("write schema file: %w", err)
		}
		zap.S().Infow("Generated schema", "model", name, "outputPath", outPath)
	}

	return nil
}

func runListModels(args []string) error {
	flags := flag.NewFlagSet("list-models", flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		zap.S().Info("Usage: schemagen-tools list-models [options]")
		zap.S().Info("")
		zap.S().Info("Options:")
		flags.PrintDefaults()
	}

	modelDir := flags.String("model-dir", "models", "Directory containing model descriptor JSON files")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	registry, err := internal.NewFileModelRegistry(*modelDir)
	if err != nil {
		return err
	}
	for _, name := range registry.ListModels() {
		fmt.Println(name)
	}
	return nil
}
