package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/kuksa-sdk/kuksa-go/pkg/log"
)

// RunView prints the events of path matching opts in human-readable form.
func RunView(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a header line plus type-specific details.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [conn:%s] %-3s %s", ts, shortenConnID(event.ConnectionID), event.Direction, event.Category)
	if m := event.Method(); m != "" {
		fmt.Fprintf(w, " %s", m)
	}
	fmt.Fprintln(w)

	switch {
	case event.Call != nil:
		c := event.Call
		fmt.Fprintf(w, "  Code: %s  Duration: %s\n", c.Code, formatDuration(c.Duration))
		if c.Message != "" {
			fmt.Fprintf(w, "  Message: %s\n", c.Message)
		}
	case event.Stream != nil:
		s := event.Stream
		switch s.Kind {
		case log.StreamMessage:
			fmt.Fprintf(w, "  %s #%d\n", s.Kind, s.Sequence)
		case log.StreamClose:
			fmt.Fprintf(w, "  %s Code: %s  Duration: %s\n", s.Kind, s.Code, formatDuration(s.Duration))
			if s.Message != "" {
				fmt.Fprintf(w, "  Message: %s\n", s.Message)
			}
		default:
			fmt.Fprintf(w, "  %s\n", s.Kind)
		}
	case event.StateChange != nil:
		sc := event.StateChange
		if sc.OldState != "" {
			fmt.Fprintf(w, "  %s -> %s", sc.OldState, sc.NewState)
		} else {
			fmt.Fprintf(w, "  -> %s", sc.NewState)
		}
		if sc.Reason != "" {
			fmt.Fprintf(w, " (%s)", sc.Reason)
		}
		fmt.Fprintln(w)
	case event.Error != nil:
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
		fmt.Fprintf(w, "  Error: %s\n", event.Error.Message)
	}
	fmt.Fprintln(w)
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	return d.Round(time.Millisecond).String()
}
