package main

import (
	"agedASN/internal/config"
	"agedASN/internal/excel"
	"agedASN/internal/headermap"
	"agedASN/internal/logger"
	"agedASN/internal/prompt"
	"agedASN/internal/report"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const configPath = "configs/config.toml"

func main() {
	command := "run"
	if len(os.Args) >= 2 {
		command = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "run":
		runInteractive(cfg)
	case "process":
		if len(os.Args) < 3 {
			fmt.Println("Error: process command requires input file path")
			fmt.Println("Usage: agedasn process <input_file_path>")
			os.Exit(1)
		}
		path, err := validateArgument(os.Args[2])
		if err != nil {
			logger.Warn("Rejected file path", "input_file", os.Args[2], "error", err)
			fmt.Println(prompt.RenderError(err))
			os.Exit(1)
		}
		if err := runProcess(cfg, path); err != nil {
			os.Exit(1)
		}
	case "process-all":
		runProcessAll(cfg)
	case "scan":
		runScan(cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: agedasn <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run                   Prompt for a Firm Order Report and evaluate it (default)")
	fmt.Println("  process <file>        Evaluate one Firm Order Report without prompting")
	fmt.Println("  process-all           Evaluate every .xlsx file in the input directory")
	fmt.Println("  scan                  Report where the required headers are in each input file")
}

func runInteractive(cfg *config.Config) {
	defer func() {
		if cfg.UI.PauseOnExit {
			if err := prompt.Pause(os.Stdin, os.Stdout); err != nil {
				logger.Warn("Pause prompt failed", "error", err)
			}
		}
	}()

	fmt.Println()
	answer, err := prompt.AskPath(os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("Prompt failed", "error", err)
		fmt.Println(prompt.RenderError(err))
		return
	}

	switch {
	case answer.Exit:
		fmt.Println("Closing the program.")
	case answer.Err != nil:
		logger.Warn("Rejected file path", "error", answer.Err)
		fmt.Println(prompt.RenderError(answer.Err))
	default:
		runProcess(cfg, answer.Path)
	}
}

// validateArgument applies the interactive path rules to a command-line
// path; the exit sentinel is not a path there.
func validateArgument(arg string) (string, error) {
	path, err := prompt.ValidatePath(arg)
	if errors.Is(err, prompt.ErrExit) {
		return "", &report.CodedError{Code: report.CodeInvalidPath, Message: "Invalid file path."}
	}
	return path, err
}

func runProcess(cfg *config.Config, path string) error {
	logger.Info("Starting process operation", "input_file", path)

	processor, cleanup := newProcessor(cfg)
	defer cleanup()

	res, err := processor.Process(context.Background(), path)
	if err != nil {
		logger.Error("Process operation failed", "input_file", path, "error", err)
		fmt.Println(prompt.RenderError(err))
		return err
	}

	fmt.Println()
	fmt.Println(renderSummary(res))
	return nil
}

func runProcessAll(cfg *config.Config) {
	logger.Info("Starting process-all operation", "input_directory", cfg.Scan.InputDirectory)

	files, err := excel.GetXlsxFiles(cfg.Scan.InputDirectory)
	if err != nil {
		logger.Error("Failed to get Excel files", "error", err)
		fmt.Printf("Error getting Excel files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No .xlsx files found in directory: %s\n", cfg.Scan.InputDirectory)
		return
	}

	processor, cleanup := newProcessor(cfg)
	defer cleanup()

	successCount := 0
	errorCount := 0
	for i, path := range files {
		name := filepath.Base(path)
		fmt.Printf("\n[%d/%d] Processing: %s\n", i+1, len(files), name)

		res, err := processor.Process(context.Background(), path)
		if err != nil {
			logger.Error("Failed to process file", "file", name, "error", err)
			fmt.Println(prompt.RenderError(err))
			errorCount++
			continue
		}
		fmt.Printf("Red %d, Yellow %d, Green %d across %d vendors\n",
			res.Totals.Red, res.Totals.Yellow, res.Totals.Green, len(res.Vendors))
		successCount++
	}

	logger.Info("Process-all operation completed", "success_count", successCount, "error_count", errorCount)

	fmt.Printf("\n========================================\n")
	fmt.Printf("Processing complete!\n")
	fmt.Printf("Success: %d files\n", successCount)
	if errorCount > 0 {
		fmt.Printf("Errors: %d files\n", errorCount)
		os.Exit(1)
	}
}

func runScan(cfg *config.Config) {
	logger.Info("Starting scan operation", "input_directory", cfg.Scan.InputDirectory)

	labels := report.LabelsFromConfig(cfg.Report).WithAliases(loadAliases(cfg))
	results, err := report.ScanDirectory(cfg.Scan.InputDirectory, labels)
	if err != nil {
		logger.Error("Scan operation failed", "error", err)
		fmt.Printf("Error during scan: %v\n", err)
		os.Exit(1)
	}

	lines := report.FormatHeaderScan(results)
	for _, line := range lines {
		fmt.Println(line)
	}

	outputFile := filepath.Join(cfg.Scan.OutputDirectory, "header_scan")
	if err := excel.WriteLinesToFile(outputFile, lines); err != nil {
		logger.Error("Failed to write header scan", "error", err)
		fmt.Printf("Error writing header scan: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Scan operation completed", "files", len(results), "output_file", outputFile)
	fmt.Printf("\nScanned %d files. Results saved to: %s\n", len(results), outputFile)
}

func aliasPath(cfg *config.Config) string {
	return filepath.Join(cfg.Scan.OutputDirectory, "header_aliases.json")
}

func loadAliases(cfg *config.Config) map[string]string {
	af, err := headermap.LoadFromFile(aliasPath(cfg))
	if err != nil {
		logger.Warn("Failed to load header aliases", "path", aliasPath(cfg), "error", err)
		return nil
	}
	return af.Map()
}

// newProcessor wires stored aliases and, when enabled, the Gemini resolver
func newProcessor(cfg *config.Config) (*report.Processor, func()) {
	opts := report.Options{
		Report:        cfg.Report,
		Progress:      os.Stdout,
		Aliases:       loadAliases(cfg),
		CandidateRows: cfg.AI.ScanRows,
	}
	cleanup := func() {}

	if cfg.AI.Enabled {
		if apiKey := headermap.GetGeminiAPIKey(); apiKey != "" {
			mapper, err := headermap.NewHeaderMapper(apiKey, cfg.AI, aliasPath(cfg))
			if err != nil {
				logger.Warn("Header mapper unavailable", "error", err)
			} else {
				opts.Resolver = mapper
				cleanup = func() { mapper.Close() }
			}
		}
	}
	return report.NewProcessor(opts), cleanup
}

func renderSummary(res *report.Result) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	colors := map[int]lipgloss.Color{
		1: lipgloss.Color("#" + report.ColorRed),
		2: lipgloss.Color("#" + report.ColorYellow),
		3: lipgloss.Color("#" + report.ColorGreen),
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("Supplier", "Red Qty", "Yellow Qty", "Green Qty", "Total Qty").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if c, ok := colors[col]; ok {
					return headerStyle.Foreground(c)
				}
				return headerStyle
			}
			return cellStyle
		})

	for _, v := range res.Vendors {
		t.Row(v.Vendor, strconv.Itoa(v.Red), strconv.Itoa(v.Yellow), strconv.Itoa(v.Green), strconv.Itoa(v.Total()))
	}
	classified := res.Totals.Red + res.Totals.Yellow + res.Totals.Green
	t.Row("Total", strconv.Itoa(res.Totals.Red), strconv.Itoa(res.Totals.Yellow), strconv.Itoa(res.Totals.Green), strconv.Itoa(classified))

	return t.String()
}
