package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kuksa-sdk/kuksa-go/pkg/log"
)

// RunExport writes the events of path matching opts as jsonl or csv to
// output, or to w when output is empty.
func RunExport(path, format, output string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

var csvHeader = []string{"timestamp", "connection_id", "direction", "category", "method", "code", "duration_us", "detail"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return cw.Error()
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
}

func csvRow(event log.Event) []string {
	var code, duration, detail string
	switch {
	case event.Call != nil:
		code = event.Call.Code.String()
		duration = strconv.FormatInt(event.Call.Duration.Microseconds(), 10)
		detail = event.Call.Message
	case event.Stream != nil:
		detail = event.Stream.Kind.String()
		if event.Stream.Kind == log.StreamClose {
			code = event.Stream.Code.String()
			duration = strconv.FormatInt(event.Stream.Duration.Microseconds(), 10)
		}
	case event.StateChange != nil:
		detail = event.StateChange.NewState
	case event.Error != nil:
		detail = event.Error.Message
	}
	return []string{
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		event.ConnectionID,
		event.Direction.String(),
		event.Category.String(),
		event.Method(),
		code,
		duration,
		detail,
	}
}
