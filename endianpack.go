// Package endianpack converts fixed-layout structs to and from byte
// sequences under an explicit byte order: little-endian, big-endian, or
// mixed, where every field carries its own order in an `endian` struct tag.
//
// Every participating type has a fixed packed length known before any
// encode or decode runs. Buffers are caller-owned and must have exactly
// that length; the package never allocates on the encode/decode path and
// never looks at the platform's native byte order.
package endianpack

import "errors"

var (
	ErrNotStruct    = errors.New("expected struct")
	ErrNotStructPtr = errors.New("expected pointer to struct")
	ErrUnsupported  = errors.New("unsupported type")
	ErrBufferLen    = errors.New("buffer length mismatch")
	ErrEndianTag    = errors.New("bad endian tag")
)

// Packable is the contract shared by primitives and records: a fixed
// packed length plus encode/decode under each uniform byte order.
// Encode fills exactly PackedLen bytes of buf; Decode reads exactly
// PackedLen bytes. Both fail with ErrBufferLen on any other length.
type Packable interface {
	PackedLen() int
	EncodeLE(buf []byte) error
	EncodeBE(buf []byte) error
	DecodeLE(buf []byte) error
	DecodeBE(buf []byte) error
}

// MixedPackable extends Packable with the mixed-endian pair, where each
// field of the type uses its own declared order.
type MixedPackable interface {
	Packable
	EncodeME(buf []byte) error
	DecodeME(buf []byte) error
}

var defaultCodec = NewCodec()

// PackedLen reports the packed byte length of val's type using the
// shared default codec.
func PackedLen(val any) (int, error) { return defaultCodec.PackedLen(val) }

// EncodeLE encodes val into buf little-endian using the default codec.
func EncodeLE(val any, buf []byte) error { return defaultCodec.EncodeLE(val, buf) }

// EncodeBE encodes val into buf big-endian using the default codec.
func EncodeBE(val any, buf []byte) error { return defaultCodec.EncodeBE(val, buf) }

// EncodeME encodes val into buf using each field's own endian tag.
func EncodeME(val any, buf []byte) error { return defaultCodec.EncodeME(val, buf) }

// DecodeLE decodes buf little-endian into out using the default codec.
func DecodeLE(buf []byte, out any) error { return defaultCodec.DecodeLE(buf, out) }

// DecodeBE decodes buf big-endian into out using the default codec.
func DecodeBE(buf []byte, out any) error { return defaultCodec.DecodeBE(buf, out) }

// DecodeME decodes buf into out using each field's own endian tag.
func DecodeME(buf []byte, out any) error { return defaultCodec.DecodeME(buf, out) }
