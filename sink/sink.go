// Package sink writes timing samples to the result log and the console, and
// reads result logs back for comparison tables and chart reports.
package sink

import (
	"errors"
	"fmt"
	"strings"

	"github.com/colorfulnotion/ltbench/bench"
)

// Header is the first line of every result log.
const Header = "class,inst,l/t,cpi,ipc"

// ErrMalformed is returned by Load for records that are not result rows.
var ErrMalformed = errors.New("sink: malformed result record")

// Sink consumes samples in emission order.
type Sink interface {
	Write(s bench.TimingSample) error
	Close() error
}

// Record formats s as one result log line, without the newline.
func Record(s bench.TimingSample) string {
	return fmt.Sprintf(`"%s","%s","%s","%e","%e"`, quote(s.Class), quote(s.Inst), quote(s.Mode), s.CPI, s.IPC)
}

func quote(v string) string { return strings.ReplaceAll(v, `"`, `""`) }

// Multi fans every sample out to each sink in order.
type Multi []Sink

func (m Multi) Write(s bench.TimingSample) error {
	for _, k := range m {
		if err := k.Write(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and returns the first error.
func (m Multi) Close() error {
	var first error
	for _, k := range m {
		if err := k.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
