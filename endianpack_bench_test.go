package endianpack

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type benchRecord struct {
	Int1 uint8
	Int2 int8
	Int3 uint16
	Int4 int16
	Int5 uint32
	Int6 int32
	Int7 uint64
	Int9 int64
}

func BenchmarkEncodeLE(b *testing.B) {
	z := benchRecord{Int1: 1, Int2: 2, Int3: 16, Int4: 18, Int5: 1586, Int6: 15262, Int7: 1547544565, Int9: 15484565656}
	c := NewCodec()
	buf := make([]byte, 30)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.EncodeLE(z, buf)
	}
}

func BenchmarkDecodeLE(b *testing.B) {
	z := benchRecord{Int1: 1, Int2: 2, Int3: 16, Int4: 18, Int5: 1586, Int6: 15262, Int7: 1547544565, Int9: 15484565656}
	y := &benchRecord{}
	c := NewCodec()
	buf := make([]byte, 30)
	require.NoError(b, c.EncodeLE(z, buf))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.DecodeLE(buf, y)
	}
	require.EqualValues(b, z, *y)
}

func BenchmarkEncodeME(b *testing.B) {
	req := Request{Cmd: 0x44, Value: 74, Timestamp: Int128{Lo: 0xFFFF_FFFF_0000_0000}}
	c := NewCodec()
	buf := make([]byte, 26)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.EncodeME(&req, buf)
	}
}

func BenchmarkYaml(b *testing.B) {
	z := benchRecord{Int1: 1, Int2: 2, Int3: 16, Int4: 18, Int5: 1586, Int6: 15262, Int7: 1547544565, Int9: 15484565656}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = yaml.Marshal(z)
	}
}
