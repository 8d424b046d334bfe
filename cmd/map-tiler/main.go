package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/map-tiler/internal/config"
	"github.com/ironsheep/map-tiler/internal/logging"
	"github.com/ironsheep/map-tiler/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("map-tiler %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := opts.cfg

	if opts.writeConfig != "" {
		if err := config.SaveConfig(cfg, opts.writeConfig); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		fmt.Printf("Wrote configuration to %s\n", opts.writeConfig)
		return
	}

	logger, closer, err := logging.Open(cfg.Paths.Log, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}

	report, err := pipeline.Run(cfg, logger)
	if err != nil {
		logger.Printf("Error: %v", err)
		closer.Close()
		os.Exit(1)
	}
	if len(report.Skipped) > 0 {
		logger.Printf("Completed with %d of %d regions skipped.", len(report.Skipped), len(report.Regions))
	}
	closer.Close()
}

const defaultConfigPath = "map-tiler.yaml"

// options is the outcome of command-line parsing.
type options struct {
	cfg *config.Config

	// writeConfig, when set, is where the effective configuration is saved
	// instead of running.
	writeConfig string
}

// parseArgs builds the effective configuration from args.
//
// Values come from the configuration file, then from explicitly set flags. A
// positional input argument replaces the configured input unless -input is
// given. The default configuration file may be absent; a file named with
// -config must exist.
func parseArgs(args []string) (*options, error) {
	fs := flag.NewFlagSet("map-tiler", flag.ContinueOnError)
	fs.Usage = printUsage
	configPath := fs.String("config", defaultConfigPath, "Path to the YAML configuration file")
	fs.String("input", "", "Map illustration to split")
	fs.String("output-dir", "", "Directory for region tiles")
	fs.String("layout", "", "Path of the layout JSON document")
	fs.String("log", "", "Persistent log file")
	fs.String("image-base-url", "", "URL prefix for tile images in the layout")
	fs.String("overlay", "", "Write a debug overlay PNG to this path")
	writeConfig := fs.String("write-config", "", "Save the effective configuration to this path and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one input, got %d arguments", fs.NArg())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["config"] {
		if _, err := os.Stat(*configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", *configPath, err)
		}
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}

	if fs.NArg() == 1 {
		cfg.Paths.Input = fs.Arg(0)
	}

	// Explicit flags win over the configuration file
	targets := map[string]*string{
		"input":          &cfg.Paths.Input,
		"output-dir":     &cfg.Paths.OutputDir,
		"layout":         &cfg.Paths.Layout,
		"log":            &cfg.Paths.Log,
		"image-base-url": &cfg.Paths.ImageBaseURL,
		"overlay":        &cfg.Paths.DebugOverlay,
	}
	fs.Visit(func(f *flag.Flag) {
		if dst, ok := targets[f.Name]; ok {
			*dst = f.Value.String()
		}
	})

	return &options{cfg: cfg, writeConfig: *writeConfig}, nil
}

func printUsage() {
	fmt.Println("map-tiler - split a hand-drawn hex map into region tiles")
	fmt.Println()
	fmt.Println("Usage: map-tiler [options] [input]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config PATH            YAML configuration (default map-tiler.yaml)")
	fmt.Println("  -input PATH             Map illustration to split")
	fmt.Println("  -output-dir DIR         Directory for region tiles")
	fmt.Println("  -layout PATH            Layout JSON document")
	fmt.Println("  -log PATH               Persistent log file")
	fmt.Println("  -image-base-url URL     Prefix for tile references in the layout")
	fmt.Println("  -overlay PATH           Write a debug overlay PNG")
	fmt.Println("  -write-config PATH      Save the effective configuration and exit")
	fmt.Println("  --version, -v           Print version information")
	fmt.Println("  --help, -h              Print this help message")
	fmt.Println()
	fmt.Println("Flags override values from the configuration file. A positional")
	fmt.Println("input replaces the configured input unless -input is given.")
}
