// Package cpu identifies the host processor and the instruction set
// extensions the catalog gates on.
package cpu

import (
	"sort"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// Feature names a capability flag.
type Feature string

const (
	SSE2       Feature = "sse2"
	SSE3       Feature = "sse3"
	SSSE3      Feature = "ssse3"
	SSE41      Feature = "sse41"
	SSE42      Feature = "sse42"
	POPCNT     Feature = "popcnt"
	AES        Feature = "aes"
	PCLMULQDQ  Feature = "pclmulqdq"
	AVX        Feature = "avx"
	AVX2       Feature = "avx2"
	FMA        Feature = "fma"
	AVX512F    Feature = "avx512f"
	AVX512CD   Feature = "avx512cd"
	AVX512ER   Feature = "avx512er"
	AVX512VL   Feature = "avx512vl"
	AVX512VNNI Feature = "avx512vnni"
	AVX512BF16 Feature = "avx512bf16"
)

var featureMap = map[Feature]cpuid.FeatureID{
	SSE2:       cpuid.SSE2,
	SSE3:       cpuid.SSE3,
	SSSE3:      cpuid.SSSE3,
	SSE41:      cpuid.SSE4,
	SSE42:      cpuid.SSE42,
	POPCNT:     cpuid.POPCNT,
	AES:        cpuid.AESNI,
	PCLMULQDQ:  cpuid.CLMUL,
	AVX:        cpuid.AVX,
	AVX2:       cpuid.AVX2,
	FMA:        cpuid.FMA3,
	AVX512F:    cpuid.AVX512F,
	AVX512CD:   cpuid.AVX512CD,
	AVX512ER:   cpuid.AVX512ER,
	AVX512VL:   cpuid.AVX512VL,
	AVX512VNNI: cpuid.AVX512VNNI,
	AVX512BF16: cpuid.AVX512BF16,
}

// Known lists every feature Detect reports, in gating order.
var Known = []Feature{
	SSE2, SSE3, SSSE3, SSE41, SSE42, POPCNT, AES, PCLMULQDQ,
	AVX, AVX2, FMA, AVX512F, AVX512CD, AVX512ER, AVX512VL, AVX512VNNI, AVX512BF16,
}

// Info is the identity and capability set of a processor.
type Info struct {
	Brand    string
	Vendor   string
	Family   int
	Model    int
	Features map[Feature]bool
}

// Detect queries the host through CPUID.
func Detect() *Info {
	info := &Info{
		Brand:    strings.TrimSpace(cpuid.CPU.BrandName),
		Vendor:   cpuid.CPU.VendorID.String(),
		Family:   cpuid.CPU.Family,
		Model:    cpuid.CPU.Model,
		Features: make(map[Feature]bool, len(featureMap)),
	}
	for name, id := range featureMap {
		info.Features[name] = cpuid.CPU.Supports(id)
	}
	return info
}

// New builds an Info with the given features set, for hosts described by
// other means (tests, listings for a foreign machine).
func New(brand string, features ...Feature) *Info {
	info := &Info{Brand: brand, Features: make(map[Feature]bool, len(features))}
	for _, f := range features {
		info.Features[f] = true
	}
	return info
}

// Has reports whether every named feature is present.
func (i *Info) Has(features ...Feature) bool {
	for _, f := range features {
		if !i.Features[f] {
			return false
		}
	}
	return true
}

// BrandNoSpaces is the brand string with every space removed, used as the
// result file name.
func (i *Info) BrandNoSpaces() string {
	return strings.ReplaceAll(i.Brand, " ", "")
}

// FeatureList returns the present features in sorted order.
func (i *Info) FeatureList() []string {
	var out []string
	for f, ok := range i.Features {
		if ok {
			out = append(out, string(f))
		}
	}
	sort.Strings(out)
	return out
}
