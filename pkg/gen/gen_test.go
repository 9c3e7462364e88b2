package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionSrc = `package wire

//endianpack:layout
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}
`

const requestSrc = `package wire

import "github.com/rawbytedev/endianpack"

//endianpack:layout
type Request struct {
	Cmd   uint16            ` + "`endian:\"le\"`" + `
	Value int64             ` + "`endian:\"little\"`" + `
	Stamp endianpack.Int128 ` + "`endian:\"big\"`" + `
}
`

func TestLayoutOffsets(t *testing.T) {
	f, err := ParseSource("version.go", []byte(versionSrc))
	require.NoError(t, err)
	require.Equal(t, "wire", f.Package)

	layouts, err := f.Layouts(nil)
	require.NoError(t, err)
	require.Len(t, layouts, 1)

	l := layouts[0]
	assert.Equal(t, "Version", l.Name)
	assert.Equal(t, 6, l.Size)
	require.Len(t, l.Fields, 3)
	assert.Equal(t, 0, l.Fields[0].Offset)
	assert.Equal(t, 2, l.Fields[1].Offset)
	assert.Equal(t, 4, l.Fields[2].Offset)
	// untagged multi-byte fields block the mixed pair
	assert.False(t, l.Mixed)
}

func TestRequestLayout(t *testing.T) {
	f, err := ParseSource("request.go", []byte(requestSrc))
	require.NoError(t, err)

	layouts, err := f.Layouts(nil)
	require.NoError(t, err)
	require.Len(t, layouts, 1)

	l := layouts[0]
	assert.Equal(t, 26, l.Size)
	assert.True(t, l.Mixed)
	assert.Equal(t, KindPackable, l.Fields[2].Kind)
	assert.Equal(t, 10, l.Fields[2].Offset)
}

func TestEmitVersion(t *testing.T) {
	f, err := ParseSource("version.go", []byte(versionSrc))
	require.NoError(t, err)
	layouts, err := f.Layouts(nil)
	require.NoError(t, err)

	src, err := Emit(f.Package, layouts)
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "// Code generated by endianpackgen. DO NOT EDIT.")
	assert.Contains(t, out, "package wire")
	assert.Contains(t, out, "func (v *Version) PackedLen() int { return 6 }")
	assert.Contains(t, out, "func (v *Version) EncodeLE(buf []byte) error {")
	assert.Contains(t, out, "binary.LittleEndian.PutUint16(buf[2:4], v.Minor)")
	assert.Contains(t, out, "v.Patch = binary.BigEndian.Uint16(buf[4:6])")
	assert.Contains(t, out, "endianpack.ErrBufferLen")
	// no tags, so no mixed pair
	assert.NotContains(t, out, "EncodeME")
}

func TestEmitRequestMixed(t *testing.T) {
	f, err := ParseSource("request.go", []byte(requestSrc))
	require.NoError(t, err)
	layouts, err := f.Layouts(nil)
	require.NoError(t, err)

	src, err := Emit(f.Package, layouts)
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "func (v *Request) EncodeME(buf []byte) error {")
	assert.Contains(t, out, "binary.LittleEndian.PutUint16(buf[0:2], v.Cmd)")
	assert.Contains(t, out, "binary.LittleEndian.PutUint64(buf[2:10], uint64(v.Value))")
	assert.Contains(t, out, "if err := v.Stamp.EncodeBE(buf[10:26]); err != nil {")
	assert.Contains(t, out, "if err := v.Stamp.DecodeBE(buf[10:26]); err != nil {")
}

func TestNestedLayouts(t *testing.T) {
	src := `package wire

type Point struct {
	X int32
	Y int32
}

//endianpack:layout
type Shape struct {
	Kind   uint8
	Origin Point
	Size   [4]byte
}
`
	f, err := ParseSource("shape.go", []byte(src))
	require.NoError(t, err)
	layouts, err := f.Layouts(nil)
	require.NoError(t, err)

	// the nested Point is resolved and emitted too
	require.Len(t, layouts, 2)
	assert.Equal(t, "Point", layouts[0].Name)
	assert.Equal(t, 8, layouts[0].Size)
	assert.Equal(t, "Shape", layouts[1].Name)
	assert.Equal(t, 13, layouts[1].Size)

	out, err := Emit(f.Package, layouts)
	require.NoError(t, err)
	assert.Contains(t, string(out), "if err := v.Origin.EncodeLE(buf[1:9]); err != nil {")
	assert.Contains(t, string(out), "copy(buf[9:13], v.Size[:])")
}

func TestExplicitTypeSelection(t *testing.T) {
	src := `package wire

type A struct {
	N uint16
}

type B struct {
	S string
}
`
	f, err := ParseSource("sel.go", []byte(src))
	require.NoError(t, err)

	layouts, err := f.Layouts([]string{"A"})
	require.NoError(t, err)
	require.Len(t, layouts, 1)
	assert.Equal(t, 2, layouts[0].Size)

	_, err = f.Layouts([]string{"B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B.S")

	_, err = f.Layouts([]string{"Missing"})
	require.Error(t, err)

	_, err = f.Layouts(nil) // nothing marked
	require.Error(t, err)
}

func TestBadEndianTag(t *testing.T) {
	src := `package wire

//endianpack:layout
type Bad struct {
	N uint16 ` + "`endian:\"middle\"`" + `
}
`
	f, err := ParseSource("bad.go", []byte(src))
	require.NoError(t, err)
	_, err = f.Layouts(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad.N")
	assert.Contains(t, err.Error(), `"middle"`)
}

func TestVariableLengthRejected(t *testing.T) {
	src := `package wire

//endianpack:layout
type Bad struct {
	Data []byte
}
`
	f, err := ParseSource("bad.go", []byte(src))
	require.NoError(t, err)
	_, err = f.Layouts(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad.Data")
	assert.Contains(t, err.Error(), "fixed packed length")
}
