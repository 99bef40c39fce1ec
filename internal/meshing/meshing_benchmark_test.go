package meshing

import (
	"testing"
)

func BenchmarkCube(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Cube(i%16, i%64, i/16%16)
	}
}

// Fingerprint runs on every append for the dedup ledger
func BenchmarkFingerprint(b *testing.B) {
	f := Cube(3, 4, 5)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Fingerprint()
	}
}
