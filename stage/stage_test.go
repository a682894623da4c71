package stage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	r := New()
	for i := 1; i <= 20; i++ {
		r.Add("timed", time.Duration(i)*time.Millisecond)
	}
	r.Add("generate", time.Microsecond)

	rows := r.Snapshot()
	require.Len(t, rows, 2)
	timed := rows[0]
	assert.Equal(t, "timed", timed.Name)
	assert.Equal(t, 20, timed.Count)
	assert.Equal(t, 210*time.Millisecond, timed.Total)
	assert.Equal(t, 10500*time.Microsecond, timed.Mean)
	assert.Equal(t, 11*time.Millisecond, timed.P50)
	assert.Equal(t, 19*time.Millisecond, timed.P95)
	assert.Equal(t, 20*time.Millisecond, timed.Max)
	assert.Equal(t, "generate", rows[1].Name)
}

func TestStart(t *testing.T) {
	r := New()
	stop := r.Start("map")
	stop()
	rows := r.Snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Count)
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Add("x", time.Second)
	r.Start("x")()
	assert.Nil(t, r.Snapshot())
}
