package observ

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogEmitsOneJSONObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Log("day_advanced", map[string]any{"day": 3, "net_worth": 51000.5})
	Log("spike_fired", nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.Equal(t, "day_advanced", first["event"])
	require.Equal(t, 3.0, first["day"])
	require.NotEmpty(t, first["ts"])

	var second map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &second))
	require.Equal(t, "spike_fired", second["event"])
}

func TestCountersSumAcrossLabelSets(t *testing.T) {
	Reset()
	IncCounter("encounters_triggered_total", map[string]string{"type": "sec"})
	IncCounter("encounters_triggered_total", map[string]string{"type": "tax"})
	IncCounterBy("encounters_triggered_total", map[string]string{"type": "sec"}, 2)

	require.Equal(t, int64(4), CounterValue("encounters_triggered_total"))

	snap := Snap()
	require.Equal(t, int64(3), snap.Counters["encounters_triggered_total"]["type=sec"])
	require.Equal(t, int64(1), snap.Counters["encounters_triggered_total"]["type=tax"])
}

func TestGaugeOverwrites(t *testing.T) {
	Reset()
	SetGauge("session_net_worth", 50_000, nil)
	SetGauge("session_net_worth", 42_000, nil)
	require.Equal(t, 42_000.0, Snap().Gauges["session_net_worth"][""])
}

func TestSnapshotIsACopy(t *testing.T) {
	Reset()
	IncCounter("x", nil)
	snap := Snap()
	snap.Counters["x"][""] = 99
	require.Equal(t, int64(1), CounterValue("x"))
}
