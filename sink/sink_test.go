package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/colorfulnotion/ltbench/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(class, inst, mode string, cpi float64) bench.TimingSample {
	return bench.TimingSample{Class: class, Inst: inst, Mode: mode, CPI: cpi, IPC: 1 / cpi, Cycles: 1000}
}

func TestRecordFormat(t *testing.T) {
	s := bench.TimingSample{Class: "reg64", Inst: "add", Mode: "latency", CPI: 1, IPC: 1}
	assert.Equal(t, `"reg64","add","latency","1.000000e+00","1.000000e+00"`, Record(s))

	s.Inst = `say "hi"`
	assert.Equal(t, `"reg64","say ""hi""","latency","1.000000e+00","1.000000e+00"`, Record(s))
}

func TestLogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	l, err := OpenLog(dir, "Intel(R) Core(TM) i7")
	require.NoError(t, err)

	want := []bench.TimingSample{
		sample("reg64", "add", "latency", 1),
		sample("reg64", "add", "throughput", 0.25),
		sample("m256", "vgatherdpd", "throughput", 4.5),
	}
	for _, s := range want {
		require.NoError(t, l.Write(s))
	}
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	osdir := runtime.GOOS
	if osdir == "windows" {
		osdir = "w32"
	}
	assert.Equal(t, filepath.Join(dir, "logs", osdir, "Intel(R)Core(TM)i7.csv"), l.Path())

	raw, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), Header+"\n"))

	got, err := Load(l.Path())
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Class, got[i].Class)
		assert.Equal(t, want[i].Inst, got[i].Inst)
		assert.Equal(t, want[i].Mode, got[i].Mode)
		assert.InEpsilon(t, want[i].CPI, got[i].CPI, 1e-6)
		assert.InEpsilon(t, want[i].IPC, got[i].IPC, 1e-6)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"fields": Header + "\n\"reg64\",\"add\",\"latency\"\n",
		"cpi":    "\"reg64\",\"add\",\"latency\",\"x\",\"1\"\n",
		"ipc":    "\"reg64\",\"add\",\"latency\",\"1\",\"\"\n",
		"quote":  "\"reg64,add\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in))
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestParseWithoutHeader(t *testing.T) {
	got, err := Parse(strings.NewReader(`"m128","pxor","throughput","3.3e-01","3.0e+00"` + "\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pxor", got[0].Inst)
	assert.InDelta(t, 3.0, got[0].IPC, 1e-9)
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)
	require.NoError(t, c.Start("Test CPU"))
	require.NoError(t, c.Write(sample("reg64", "add", "latency", 1)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Test CPU", lines[0])
	assert.Equal(t, "== latency/throughput ==", lines[1])
	assert.Equal(t, "   reg64:"+strings.Repeat(" ", 37)+"add:   latency: CPI=    1.00, IPC=    1.00", lines[2])
	assert.NotContains(t, buf.String(), "\033[")
}

func TestConsoleCSV(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)
	require.NoError(t, c.Start("Test CPU"))
	s := sample("m512", "vpternlogd", "throughput", 0.5)
	require.NoError(t, c.Write(s))
	assert.Equal(t, "Test CPU\n"+Record(s)+"\n", buf.String())
	assert.NotContains(t, buf.String(), Header)
	assert.NotContains(t, buf.String(), "== latency/throughput ==")
}

type failSink struct {
	writes int
	err    error
}

func (f *failSink) Write(bench.TimingSample) error {
	f.writes++
	return f.err
}

func (f *failSink) Close() error { return f.err }

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	a, b, c := &failSink{}, &failSink{err: boom}, &failSink{}
	m := Multi{a, b, c}
	assert.ErrorIs(t, m.Write(sample("reg64", "add", "latency", 1)), boom)
	assert.Equal(t, 1, a.writes)
	assert.Equal(t, 1, b.writes)
	assert.Equal(t, 0, c.writes)
	assert.ErrorIs(t, m.Close(), boom)
}
