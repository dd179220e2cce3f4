package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ktechmidas/data-contract-creator/src/directors"
	"github.com/ktechmidas/data-contract-creator/src/settings"
	"github.com/ktechmidas/data-contract-creator/src/validation"
)

// printUsage prints helpful usage information
func printUsage() {
	log.Println("Data Contract Creator - assemble, compile and validate data contracts")
	log.Println("\nUsage:")
	log.Println("  data-contract-creator [options]")
	log.Println("\nOptions:")
	flag.PrintDefaults()

	log.Println("\nExamples:")
	log.Println("  data-contract-creator --contract=mycontract.json")
	log.Println("  data-contract-creator --contract=mycontract.json --logfile=creator.log")
}

func main() {
	// Get the global settings instance
	args := settings.GetSettings()

	var contractFile string
	flag.StringVar(&contractFile, "contract", "", "Path to a serialized contract document to import and validate")
	flag.StringVar(&args.LogFile, "logfile", "", "Path to the log file (default: stdout)")
	flag.BoolVar(&args.Verbose, "verbose", true, "Enable verbose logging")
	flag.BoolVar(&args.Debug, "debug", false, "Enable debug mode")
	flag.BoolVar(&args.PrintToScreen, "print", true, "Print log messages to screen")
	flag.StringVar(&args.Version, "version", "0.0.1alpha", "Shows version")

	// Parse the command line
	flag.Parse()

	if contractFile == "" {
		fmt.Fprintln(os.Stderr, "Error: a contract file is required")
		printUsage()
		os.Exit(1)
	}

	if args.Verbose {
		log.Println("Data Contract Creator starting with options:")
		log.Printf("  Contract File: %s\n", contractFile)
		log.Printf("  Log File: %s\n", args.LogFile)
		log.Printf("  Debug: %v\n", args.Debug)
	}

	logger, err := initLogger(args)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	validator, err := validation.NewContractValidator(sugar)
	if err != nil {
		log.Fatalf("Failed to initialize contract validator: %v", err)
	}

	service := directors.NewContractService(validator, sugar, args)

	serialized, err := os.ReadFile(contractFile)
	if err != nil {
		log.Fatalf("Failed to read contract file: %v", err)
	}

	if err := service.ImportContract(string(serialized)); err != nil {
		log.Fatalf("Failed to import contract: %v", err)
	}
	sugar.Infof("Imported %d document types from %s", len(service.DocumentTypes()), contractFile)

	canonical := service.Compile()
	fmt.Println(canonical)

	messages, err := service.Validate()
	if err != nil {
		log.Fatalf("Validation could not run: %v", err)
	}

	if len(messages) == 0 {
		sugar.Infof("Contract is valid")
		return
	}
	sugar.Warnf("Contract has %d validation findings:", len(messages))
	for _, message := range messages {
		fmt.Printf("  - %s\n", message)
	}
	os.Exit(2)
}

func initLogger(args *settings.Arguments) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	outputPaths := []string{"stdout"}
	if args.LogFile != "" {
		// Ensure log directory exists
		logDir := filepath.Dir(args.LogFile)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if args.PrintToScreen {
			outputPaths = []string{"stdout", args.LogFile}
		} else {
			outputPaths = []string{args.LogFile}
		}
	}

	if args.Debug {
		// Development configuration with more verbose output
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = outputPaths
		logger, err = z.Build()
	} else {
		z := zap.NewProductionConfig()
		z.OutputPaths = outputPaths
		logger, err = z.Build()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Replace standard log with zap
	zap.ReplaceGlobals(logger)

	return logger, nil
}
