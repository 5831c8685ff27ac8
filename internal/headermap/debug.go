package headermap

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var debugDir = filepath.Join("logs", "ai_debug")

func saveDebugDump(candidates, missing []string, aliases []HeaderAlias, err error) {
	if debugDir == "" {
		return
	}
	os.MkdirAll(debugDir, 0755)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	file, fileErr := os.Create(filepath.Join(debugDir, fmt.Sprintf("header_mapping_%s.txt", timestamp)))
	if fileErr != nil {
		return
	}
	defer file.Close()

	fmt.Fprintf(file, "Header Mapping Debug - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "===========================================\n\n")

	fmt.Fprintf(file, "CANDIDATE HEADERS (%d):\n", len(candidates))
	for i, c := range candidates {
		fmt.Fprintf(file, "%d. %s\n", i+1, c)
	}

	fmt.Fprintf(file, "\nMISSING LABELS (%d):\n", len(missing))
	for i, m := range missing {
		fmt.Fprintf(file, "%d. %s\n", i+1, m)
	}

	fmt.Fprintf(file, "\nAI RESPONSE:\n")
	if err != nil {
		fmt.Fprintf(file, "ERROR: %v\n", err)
	} else if len(aliases) == 0 {
		fmt.Fprintf(file, "No aliases accepted (all were NO_MATCH or low confidence)\n")
	} else {
		for i, a := range aliases {
			fmt.Fprintf(file, "%d. '%s' -> '%s' (%.2f confidence)\n", i+1, a.SheetHeader, a.Canonical, a.Confidence)
		}
	}

	fmt.Fprintf(file, "\n===========================================\n")
}
