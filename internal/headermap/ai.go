package headermap

import (
	"agedASN/internal/config"
	"agedASN/internal/logger"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const noMatch = "NO_MATCH"

// HeaderMapper asks Gemini which sheet headers stand for required labels
// the workbook does not spell exactly.
type HeaderMapper struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	minConfidence float64
	timeout       time.Duration

	// aliasPath, when set, receives every accepted suggestion
	aliasPath string

	generate func(ctx context.Context, prompt string) (string, error)
}

// NewHeaderMapper creates a Gemini-backed mapper
func NewHeaderMapper(apiKey string, cfg config.AIConfig, aliasPath string) (*HeaderMapper, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	logger.Info("Initializing header mapper with Gemini API", "model", cfg.Model)

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("Failed to create Gemini client", "error", err)
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.1)

	hm := &HeaderMapper{
		client:        client,
		model:         model,
		minConfidence: cfg.MinConfidence,
		timeout:       time.Duration(cfg.TimeoutSeconds) * time.Second,
		aliasPath:     aliasPath,
	}
	hm.generate = hm.generateText
	return hm, nil
}

// Close cleans up the client
func (hm *HeaderMapper) Close() error {
	if hm.client != nil {
		return hm.client.Close()
	}
	return nil
}

// ResolveHeaders returns sheet header -> label suggestions for the missing
// labels. Only labels from missing are accepted.
func (hm *HeaderMapper) ResolveHeaders(ctx context.Context, candidates, missing []string) (map[string]string, error) {
	if len(candidates) == 0 || len(missing) == 0 {
		return nil, fmt.Errorf("both candidate headers and missing labels must be provided")
	}

	logger.Info("Requesting header aliases", "candidates", len(candidates), "missing", missing)

	if hm.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hm.timeout)
		defer cancel()
	}

	prompt := buildAliasPrompt(candidates, missing)
	logger.Debug("Header alias prompt", "content", prompt)

	start := time.Now()
	text, err := hm.generate(ctx, prompt)
	if err != nil {
		logger.Error("Gemini API request failed", "error", err, "duration", time.Since(start))
		saveDebugDump(candidates, missing, nil, err)
		return nil, fmt.Errorf("failed to generate AI response: %w", err)
	}
	logger.Debug("Header alias response", "content", text, "duration", time.Since(start))

	aliases := filterMissing(parseAliasResponse(text, hm.minConfidence), missing)
	saveDebugDump(candidates, missing, aliases, nil)

	if hm.aliasPath != "" && len(aliases) > 0 {
		if err := hm.persist(aliases); err != nil {
			logger.Warn("Failed to save header aliases", "path", hm.aliasPath, "error", err)
		}
	}

	out := make(map[string]string, len(aliases))
	for _, a := range aliases {
		out[a.SheetHeader] = a.Canonical
	}
	logger.Info("Header aliases accepted", "count", len(out))
	return out, nil
}

func (hm *HeaderMapper) persist(aliases []HeaderAlias) error {
	af, err := LoadFromFile(hm.aliasPath)
	if err != nil {
		return err
	}
	af.Merge(aliases)
	return af.SaveToFile(hm.aliasPath)
}

func (hm *HeaderMapper) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := hm.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response generated from AI")
	}

	var sb strings.Builder
	for i, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		} else {
			logger.Warn("Non-text part in response", "index", i, "type", fmt.Sprintf("%T", part))
		}
	}
	return sb.String(), nil
}

func buildAliasPrompt(candidates, missing []string) string {
	var sb strings.Builder
	sb.WriteString(`You are helping to read a purchase order report exported to Excel.

TASK: For each REQUIRED LABEL, find the sheet header that means the same thing, or answer "NO_MATCH".

SHEET HEADERS (text found in the top rows of the sheet):
`)
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- %s\n", c)
	}

	sb.WriteString(`
REQUIRED LABELS:
`)
	for _, m := range missing {
		fmt.Fprintf(&sb, "- %s\n", m)
	}

	sb.WriteString(`
INSTRUCTIONS:
1. Only suggest a header you are confident about (>80% certainty)
2. Use each sheet header for AT MOST ONE label
3. Copy the sheet header exactly as listed

OUTPUT FORMAT (one line per required label):
SheetHeader|Label|Confidence

EXAMPLES:
Supplier|Vendor Name|0.95
Purchase Order|PO Number|0.90
|Due Date|NO_MATCH

Now provide the lines:`)
	return sb.String()
}

// parseAliasResponse reads "SheetHeader|Label|Confidence" lines, dropping
// NO_MATCH answers and anything under minConfidence.
func parseAliasResponse(response string, minConfidence float64) []HeaderAlias {
	var aliases []HeaderAlias
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`")
		if line == "" || strings.HasPrefix(line, "SheetHeader|") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			logger.Debug("Skipping alias line", "reason", "invalid format", "content", line)
			continue
		}

		sheetHeader := strings.TrimSpace(parts[0])
		canonical := strings.TrimSpace(parts[1])
		confStr := strings.TrimSpace(parts[2])
		if sheetHeader == "" || sheetHeader == noMatch || canonical == noMatch || confStr == noMatch {
			continue
		}

		var confidence float64
		if _, err := fmt.Sscanf(confStr, "%f", &confidence); err != nil {
			continue
		}
		if confidence < minConfidence {
			logger.Debug("Skipping low confidence alias", "sheet_header", sheetHeader, "confidence", confidence)
			continue
		}

		aliases = append(aliases, HeaderAlias{SheetHeader: sheetHeader, Canonical: canonical, Confidence: confidence})
	}
	return aliases
}

// filterMissing keeps aliases whose label is one of missing
func filterMissing(aliases []HeaderAlias, missing []string) []HeaderAlias {
	wanted := make(map[string]bool, len(missing))
	for _, m := range missing {
		wanted[m] = true
	}
	var out []HeaderAlias
	for _, a := range aliases {
		if wanted[a.Canonical] {
			out = append(out, a)
		}
	}
	return out
}

// GetGeminiAPIKey gets the API key from environment variable
func GetGeminiAPIKey() string {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY environment variable not set")
	}
	return apiKey
}
