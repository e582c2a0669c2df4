package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/kuksa-sdk/kuksa-go/pkg/log"
)

const (
	getValue  = "/kuksa.val.v2.VAL/GetValue"
	subscribe = "/kuksa.val.v2.VAL/Subscribe"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calls.cbor")

	logger, err := log.NewFileLogger(path)
	require.NoError(t, err)
	for _, e := range events {
		logger.Log(e)
	}
	require.NoError(t, logger.Close())
	return path
}

func sampleEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	return []log.Event{
		{
			Timestamp: ts, ConnectionID: "abc12345-0000", Direction: log.DirectionOut,
			Category: log.CategoryState, Target: "127.0.0.1:55555",
			StateChange: &log.StateChangeEvent{OldState: "IDLE", NewState: "READY"},
		},
		{
			Timestamp: ts.Add(time.Second), ConnectionID: "abc12345-0000", Direction: log.DirectionOut,
			Category: log.CategoryCall,
			Call:     &log.CallEvent{Method: getValue, Code: codes.OK, Duration: 1500 * time.Microsecond},
		},
		{
			Timestamp: ts.Add(2 * time.Second), ConnectionID: "abc12345-0000", Direction: log.DirectionOut,
			Category: log.CategoryCall,
			Call:     &log.CallEvent{Method: getValue, Code: codes.NotFound, Duration: 500 * time.Microsecond, Message: "signal not found"},
		},
		{
			Timestamp: ts.Add(3 * time.Second), ConnectionID: "def67890-0000", Direction: log.DirectionIn,
			Category: log.CategoryStream,
			Stream:   &log.StreamEvent{Method: subscribe, Kind: log.StreamMessage, Sequence: 1},
		},
		{
			Timestamp: ts.Add(4 * time.Second), ConnectionID: "def67890-0000", Direction: log.DirectionOut,
			Category: log.CategoryError,
			Error:    &log.ErrorEventData{Message: "token expired", Context: "auth"},
		},
	}
}

func TestBuildFilter(t *testing.T) {
	f, err := FilterOptions{Direction: "IN", Category: "stream", Method: "Subscribe", Failed: true}.Build()
	require.NoError(t, err)
	assert.Equal(t, log.DirectionIn, *f.Direction)
	assert.Equal(t, log.CategoryStream, *f.Category)
	assert.True(t, f.FailedOnly)

	_, err = FilterOptions{Direction: "sideways"}.Build()
	assert.ErrorContains(t, err, "invalid direction")
	_, err = FilterOptions{Category: "frame"}.Build()
	assert.ErrorContains(t, err, "invalid category")
	_, err = FilterOptions{TimeStart: "yesterday"}.Build()
	assert.ErrorContains(t, err, "time-start")
}

func TestView(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, FilterOptions{}, &buf))
	out := buf.String()

	assert.Contains(t, out, "2026-01-28T10:15:33.123456Z [conn:abc12345] OUT CALL "+getValue)
	assert.Contains(t, out, "Code: OK  Duration: 1.5ms")
	assert.Contains(t, out, "Message: signal not found")
	assert.Contains(t, out, "IDLE -> READY")
	assert.Contains(t, out, "MESSAGE #1")
	assert.Contains(t, out, "Context: auth")
}

func TestViewFailedOnly(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, FilterOptions{Failed: true}, &buf))
	out := buf.String()

	assert.Contains(t, out, "NotFound")
	assert.Contains(t, out, "token expired")
	assert.NotContains(t, out, "Code: OK")
	assert.NotContains(t, out, "READY")
}

func TestExportJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "jsonl", "", FilterOptions{Category: "call"}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var event log.Event
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &event))
	require.NotNil(t, event.Call)
	assert.Equal(t, codes.NotFound, event.Call.Code)
}

func TestExportCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "csv", "", FilterOptions{}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"2026-01-28T10:15:33.123456Z", "abc12345-0000", "OUT", "CALL", getValue, "OK", "1500", ""}, rows[2])
	assert.Equal(t, "READY", rows[1][7])
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	err := RunExport(path, "xml", "", FilterOptions{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")
}

func TestFilterWritesMatchingEvents(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.cbor")

	var buf bytes.Buffer
	require.NoError(t, RunFilter(path, out, FilterOptions{ConnID: "def67890-0000"}, &buf))
	assert.Contains(t, buf.String(), "Filtered 2 events")

	stats, err := Collect(out, FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEvents)
	assert.Len(t, stats.Connections, 1)
}

func TestStats(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	stats, err := Collect(path, FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalEvents)
	assert.Equal(t, 2, stats.EventsByCategory[log.CategoryCall])
	assert.Equal(t, 1, stats.Errors)

	gv := stats.Methods[getValue]
	require.NotNil(t, gv)
	assert.Equal(t, 2, gv.Calls)
	assert.Equal(t, 1, gv.Failures)
	assert.Equal(t, time.Millisecond, gv.Average())
	assert.Equal(t, uint64(1), stats.Methods[subscribe].Messages)

	conn := stats.Connections["abc12345-0000"]
	require.NotNil(t, conn)
	assert.Equal(t, "127.0.0.1:55555", conn.Target)
	assert.Equal(t, "READY", conn.LastState)

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, FilterOptions{}, &buf))
	out := buf.String()
	assert.Contains(t, out, "Total Events: 5")
	assert.Contains(t, out, "calls 2, failed 1, avg 1.0ms")
	assert.Contains(t, out, "Errors: 1")
}
