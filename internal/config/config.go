package config

import (
	"agedASN/internal/logger"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Report ReportConfig `toml:"report"`
	Scan   ScanConfig   `toml:"scan"`
	AI     AIConfig     `toml:"ai"`
	UI     UIConfig     `toml:"ui"`
}

type ReportConfig struct {
	SummarySheet   string   `toml:"summary_sheet"`
	TableStyle     string   `toml:"table_style"`
	OverdueDays    int      `toml:"overdue_days"`
	PONumberHeader string   `toml:"po_number_header"`
	VendorHeader   string   `toml:"vendor_header"`
	DueDateHeaders []string `toml:"due_date_headers"`
	StatusHeader   string   `toml:"status_header"`
	DateLayout     string   `toml:"date_layout"`
}

type ScanConfig struct {
	InputDirectory  string `toml:"input_directory"`
	OutputDirectory string `toml:"output_directory"`
}

type AIConfig struct {
	Enabled        bool    `toml:"enabled"`
	Model          string  `toml:"model"`
	MinConfidence  float64 `toml:"min_confidence"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	ScanRows       int     `toml:"scan_rows"`
}

type UIConfig struct {
	PauseOnExit bool `toml:"pause_on_exit"`
}

// Default returns the configuration written on first start
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			SummarySheet:   "Summary",
			TableStyle:     "TableStyleMedium9",
			OverdueDays:    30,
			PONumberHeader: "PO Number",
			VendorHeader:   "Vendor Name",
			DueDateHeaders: []string{"Due Date", "Estimated Receipt Date (ETA)"},
			StatusHeader:   "ASN Status",
			DateLayout:     "2006-01-02 15:04:05",
		},
		Scan: ScanConfig{
			InputDirectory:  "data/input",
			OutputDirectory: "data/output",
		},
		AI: AIConfig{
			Enabled:        false,
			Model:          "gemini-2.0-flash-exp",
			MinConfidence:  0.8,
			TimeoutSeconds: 60,
			ScanRows:       10,
		},
		UI: UIConfig{
			PauseOnExit: true,
		},
	}
}

// LoadConfig loads configuration from the specified config file path
func LoadConfig(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create configs directory if it doesn't exist
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %v", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	// Load existing config
	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
	}

	config.applyDefaults()

	logger.Info("Loaded configuration", "path", configPath)
	return &config, nil
}

// applyDefaults fills every zero-valued key. Booleans are left as decoded.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Report.SummarySheet == "" {
		c.Report.SummarySheet = def.Report.SummarySheet
	}
	if c.Report.TableStyle == "" {
		c.Report.TableStyle = def.Report.TableStyle
	}
	if c.Report.OverdueDays <= 0 {
		c.Report.OverdueDays = def.Report.OverdueDays
	}
	if c.Report.PONumberHeader == "" {
		c.Report.PONumberHeader = def.Report.PONumberHeader
	}
	if c.Report.VendorHeader == "" {
		c.Report.VendorHeader = def.Report.VendorHeader
	}
	if len(c.Report.DueDateHeaders) == 0 {
		c.Report.DueDateHeaders = def.Report.DueDateHeaders
	}
	if c.Report.StatusHeader == "" {
		c.Report.StatusHeader = def.Report.StatusHeader
	}
	if c.Report.DateLayout == "" {
		c.Report.DateLayout = def.Report.DateLayout
	}
	if c.Scan.InputDirectory == "" {
		c.Scan.InputDirectory = def.Scan.InputDirectory
	}
	if c.Scan.OutputDirectory == "" {
		c.Scan.OutputDirectory = def.Scan.OutputDirectory
	}
	if c.AI.Model == "" {
		c.AI.Model = def.AI.Model
	}
	if c.AI.MinConfidence <= 0 {
		c.AI.MinConfidence = def.AI.MinConfidence
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = def.AI.TimeoutSeconds
	}
	if c.AI.ScanRows <= 0 {
		c.AI.ScanRows = def.AI.ScanRows
	}
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}
