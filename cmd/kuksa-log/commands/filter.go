// Package commands implements the kuksa-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kuksa-sdk/kuksa-go/pkg/log"
)

// FilterOptions holds the filter flags shared by all commands.
type FilterOptions struct {
	ConnID    string
	Method    string
	Direction string
	Category  string
	Failed    bool
	TimeStart string
	TimeEnd   string
}

// Build converts the flag values into a log.Filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{
		ConnectionID: o.ConnID,
		Method:       o.Method,
		FailedOnly:   o.Failed,
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if o.Direction != "" {
		d, err := ParseDirectionFlag(o.Direction)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Direction = &d
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// ParseDirectionFlag parses "in" or "out".
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	}
	return 0, fmt.Errorf("invalid direction: %s (valid: in, out)", s)
}

// ParseCategoryFlag parses a category name in any case.
func ParseCategoryFlag(s string) (log.Category, error) {
	if c, ok := log.ParseCategory(strings.ToUpper(s)); ok {
		return c, nil
	}
	return 0, fmt.Errorf("invalid category: %s (valid: call, stream, state, error)", s)
}

// RunFilter copies the events of path matching opts into output.
func RunFilter(path, output string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
		count++
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, output)
	return nil
}
