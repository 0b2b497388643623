package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Load reads a document file and extracts its text content. Supported
// extensions: .txt, .md, .csv. CSV files are rendered as structured text
// (header line plus one line per row) so they chunk like prose.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	fileName := filepath.Base(path)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))

	var (
		content  string
		metadata map[string]string
	)

	switch ext {
	case "txt", "md", "markdown":
		content = string(data)
		metadata = map[string]string{
			"characterCount": strconv.Itoa(len(content)),
			"lineCount":      strconv.Itoa(strings.Count(content, "\n")),
			"parsingMethod":  "text",
		}
	case "csv":
		content, metadata, err = parseCSV(data)
		if err != nil {
			return nil, fmt.Errorf("parse CSV: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	return &Document{
		ID:         uuid.New().String(),
		FileName:   fileName,
		Content:    content,
		Metadata:   metadata,
		IngestedAt: time.Now().UTC(),
	}, nil
}

// parseCSV converts CSV bytes to a textual representation.
func parseCSV(data []byte) (string, map[string]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return "", nil, err
	}

	var lines []string
	for i, row := range rows {
		if i == 0 {
			lines = append(lines, "Headers: "+strings.Join(row, ", "))
			continue
		}
		lines = append(lines, fmt.Sprintf("Row %d: %s", i, strings.Join(row, " | ")))
	}

	columns := 0
	if len(rows) > 0 {
		columns = len(rows[0])
	}
	metadata := map[string]string{
		"rowCount":      strconv.Itoa(len(rows)),
		"columnCount":   strconv.Itoa(columns),
		"parsingMethod": "csv",
	}

	return strings.Join(lines, "\n"), metadata, nil
}
