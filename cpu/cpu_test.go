package cpu

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoHas(t *testing.T) {
	info := New("Intel(R) Core(TM) i7-6700K CPU @ 4.00GHz", AVX, AVX2, FMA)

	assert.True(t, info.Has(AVX))
	assert.True(t, info.Has(AVX, AVX2, FMA))
	assert.False(t, info.Has(AVX512F))
	assert.False(t, info.Has(AVX2, AVX512F))
	assert.True(t, info.Has())
	assert.Equal(t, []string{"avx", "avx2", "fma"}, info.FeatureList())
}

func TestBrandNoSpaces(t *testing.T) {
	info := New("AMD Ryzen 9 7950X 16-Core Processor")
	assert.Equal(t, "AMDRyzen97950X16-CoreProcessor", info.BrandNoSpaces())
}

func TestDetect(t *testing.T) {
	info := Detect()
	assert.Len(t, info.Features, len(featureMap))
	if runtime.GOARCH == "amd64" {
		assert.True(t, info.Has(SSE2), "every amd64 processor has SSE2")
		if info.Has(AVX2) {
			assert.True(t, info.Has(AVX))
		}
	}
}

func TestKnownCoversFeatureMap(t *testing.T) {
	assert.Len(t, Known, len(featureMap))
	for _, f := range Known {
		_, ok := featureMap[f]
		assert.True(t, ok, f)
	}
}
