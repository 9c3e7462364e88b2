package common

import (
	"encoding/binary"
	"math"
	"reflect"
)

// Order selects one of the two canonical byte orders.
type Order int

const (
	Little Order = iota
	Big
)

func (o Order) String() string {
	if o == Big {
		return "big"
	}
	return "little"
}

// ByteOrder returns the encoding/binary routines for o.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// GoName returns the encoding/binary selector for o, for generated source.
func (o Order) GoName() string {
	if o == Big {
		return "binary.BigEndian"
	}
	return "binary.LittleEndian"
}

// ParseOrder maps an endian tag value to its canonical order. Both the
// short and long spellings are accepted; the long forms may go away in a
// later minor version.
func ParseOrder(tag string) (Order, bool) {
	switch tag {
	case "le", "little":
		return Little, true
	case "be", "big":
		return Big, true
	default:
		return 0, false
	}
}

// IsFixedKind reports whether k is a fixed-size primitive kind.
// int and uint are excluded: their width is platform-dependent.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// FixedSize returns the byte width for fixed-size primitive kinds.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8
	default:
		return -1
	}
}

// NamedWidth returns the byte width for a Go type name as it appears in
// source, or -1 for names without a fixed width.
func NamedWidth(name string) int {
	switch name {
	case "bool", "int8", "uint8", "byte":
		return 1
	case "int16", "uint16":
		return 2
	case "int32", "uint32", "float32":
		return 4
	case "int64", "uint64", "float64":
		return 8
	default:
		return -1
	}
}

// PutFixed encodes a fixed-width primitive value into b under bo.
// b must already be sliced to the field's exact width.
func PutFixed(b []byte, v reflect.Value, bo binary.ByteOrder) {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			b[0] = 1
		} else {
			b[0] = 0
		}
	case reflect.Int8:
		b[0] = byte(v.Int())
	case reflect.Uint8:
		b[0] = byte(v.Uint())
	case reflect.Int16:
		bo.PutUint16(b, uint16(v.Int()))
	case reflect.Uint16:
		bo.PutUint16(b, uint16(v.Uint()))
	case reflect.Int32:
		bo.PutUint32(b, uint32(v.Int()))
	case reflect.Uint32:
		bo.PutUint32(b, uint32(v.Uint()))
	case reflect.Int64:
		bo.PutUint64(b, uint64(v.Int()))
	case reflect.Uint64:
		bo.PutUint64(b, v.Uint())
	case reflect.Float32:
		bo.PutUint32(b, math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		bo.PutUint64(b, math.Float64bits(v.Float()))
	}
}

// GetFixed decodes a fixed-width primitive from b under bo and sets dst.
func GetFixed(dst reflect.Value, b []byte, bo binary.ByteOrder) {
	switch dst.Kind() {
	case reflect.Bool:
		dst.SetBool(b[0] != 0)
	case reflect.Int8:
		dst.SetInt(int64(int8(b[0])))
	case reflect.Uint8:
		dst.SetUint(uint64(b[0]))
	case reflect.Int16:
		dst.SetInt(int64(int16(bo.Uint16(b))))
	case reflect.Uint16:
		dst.SetUint(uint64(bo.Uint16(b)))
	case reflect.Int32:
		dst.SetInt(int64(int32(bo.Uint32(b))))
	case reflect.Uint32:
		dst.SetUint(uint64(bo.Uint32(b)))
	case reflect.Int64:
		dst.SetInt(int64(bo.Uint64(b)))
	case reflect.Uint64:
		dst.SetUint(bo.Uint64(b))
	case reflect.Float32:
		dst.SetFloat(float64(math.Float32frombits(bo.Uint32(b))))
	case reflect.Float64:
		dst.SetFloat(math.Float64frombits(bo.Uint64(b)))
	}
}
