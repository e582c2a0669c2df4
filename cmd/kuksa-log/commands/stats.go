package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/kuksa-sdk/kuksa-go/pkg/log"
)

// Stats holds aggregate statistics about a call log.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Methods          map[string]*MethodStats
	Connections      map[string]*ConnectionStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// MethodStats aggregates the calls and streams of one RPC method.
type MethodStats struct {
	Calls    int
	Failures int
	Messages uint64
	Total    time.Duration
}

// Average is the mean duration of completed calls.
func (m *MethodStats) Average() time.Duration {
	if m.Calls == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Calls)
}

// ConnectionStats holds statistics for a single channel.
type ConnectionStats struct {
	Target    string
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	LastState string
}

// Collect reads every event of path matching opts.
func Collect(path string, opts FilterOptions) (*Stats, error) {
	filter, err := opts.Build()
	if err != nil {
		return nil, err
	}
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Methods:          make(map[string]*MethodStats),
		Connections:      make(map[string]*ConnectionStats),
	}
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if conn.Target == "" {
		conn.Target = event.Target
	}
	if event.StateChange != nil {
		conn.LastState = event.StateChange.NewState
	}

	if m := event.Method(); m != "" {
		ms, ok := s.Methods[m]
		if !ok {
			ms = &MethodStats{}
			s.Methods[m] = ms
		}
		switch {
		case event.Call != nil:
			ms.Calls++
			ms.Total += event.Call.Duration
		case event.Stream != nil && event.Stream.Kind == log.StreamMessage:
			ms.Messages++
		case event.Stream != nil && event.Stream.Kind == log.StreamClose:
			ms.Calls++
			ms.Total += event.Stream.Duration
		}
		if event.Failed() {
			ms.Failures++
		}
	}
	if event.Error != nil {
		s.Errors++
	}
}

// RunStats prints the statistics of path.
func RunStats(path string, opts FilterOptions, w io.Writer) error {
	stats, err := Collect(path, opts)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Databroker Call Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryCall, log.CategoryStream, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Methods) > 0 {
		fmt.Fprintln(w, "Methods:")
		names := make([]string, 0, len(stats.Methods))
		for m := range stats.Methods {
			names = append(names, m)
		}
		sort.Strings(names)
		for _, m := range names {
			ms := stats.Methods[m]
			fmt.Fprintf(w, "  %s\n", m)
			fmt.Fprintf(w, "           calls %d, failed %d, avg %s", ms.Calls, ms.Failures, formatDuration(ms.Average()))
			if ms.Messages > 0 {
				fmt.Fprintf(w, ", messages %d", ms.Messages)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	if len(stats.Connections) > 0 {
		type connInfo struct {
			id    string
			stats *ConnectionStats
		}
		conns := make([]connInfo, 0, len(stats.Connections))
		for id, cs := range stats.Connections {
			conns = append(conns, connInfo{id, cs})
		}
		sort.Slice(conns, func(i, j int) bool {
			return conns[i].stats.FirstSeen.Before(conns[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range conns {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenConnID(c.id), c.stats.Events, duration)
			if c.stats.Target != "" {
				fmt.Fprintf(w, "           Target: %s\n", c.stats.Target)
			}
			if c.stats.LastState != "" {
				fmt.Fprintf(w, "           Last state: %s\n", c.stats.LastState)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
