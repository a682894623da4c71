package jit

import (
	"github.com/colorfulnotion/ltbench/log"
	"golang.org/x/sys/unix"
)

// adviseHuge asks for transparent huge pages so a 2 MiB aligned region is
// backed by one TLB entry.
func adviseHuge(b []byte) {
	if err := unix.Madvise(b, unix.MADV_HUGEPAGE); err != nil {
		log.Debug(log.JitMonitoring, "madvise hugepage", "err", err)
	}
}
