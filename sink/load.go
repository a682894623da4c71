package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/colorfulnotion/ltbench/bench"
)

// Load reads a result log written by Log.
func Load(path string) ([]bench.TimingSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Parse reads result records from r. The header line is optional.
func Parse(r io.Reader) ([]bench.TimingSample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var out []bench.TimingSample
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if line == 1 && strings.Join(rec, ",") == Header {
			continue
		}
		s, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, s)
	}
}

func parseRecord(rec []string) (bench.TimingSample, error) {
	if len(rec) != 5 {
		return bench.TimingSample{}, fmt.Errorf("%w: %d fields", ErrMalformed, len(rec))
	}
	cpi, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
	if err != nil {
		return bench.TimingSample{}, fmt.Errorf("%w: cpi %q", ErrMalformed, rec[3])
	}
	ipc, err := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
	if err != nil {
		return bench.TimingSample{}, fmt.Errorf("%w: ipc %q", ErrMalformed, rec[4])
	}
	return bench.TimingSample{Class: rec[0], Inst: rec[1], Mode: rec[2], CPI: cpi, IPC: ipc}, nil
}
