package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Errorf("failed to set up logger: %w", err))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		if err := runGenerate(os.Args[2:]); err != nil {
			sugar.Fatalf("generate: %v", err)
		}
	case "list-models":
		if err := runListModels(os.Args[2:]); err != nil {
			sugar.Fatalf("list-models: %v", err)
		}
	default:
		sugar.Errorf("unknown command %q", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	logger := zap.S()
	logger.Info("Usage: schemagen-tools <command> [options]")
	logger.Info("")
	logger.Info("Commands:")
	logger.Info("  generate     Generate <model>.json JSON-Schema documents from a model directory")
	logger.Info("  list-models  List the model descriptors found in a model directory")
}
