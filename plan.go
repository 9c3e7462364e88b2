package endianpack

import (
	"fmt"
	"reflect"

	"github.com/rawbytedev/endianpack/internal/common"
)

var (
	packableType = reflect.TypeOf((*Packable)(nil)).Elem()
	mixedType    = reflect.TypeOf((*MixedPackable)(nil)).Elem()
)

type fieldClass int

const (
	classPrim     fieldClass = iota // fixed-width primitive kind
	classBytes                      // [N]byte, order-insensitive
	classArray                      // [N]fixed-primitive, element-wise
	classStruct                     // nested record, recursive plan
	classPackable                   // delegates to the type's own methods
)

type structPlan struct {
	typ       reflect.Type
	size      int
	meErr     error // non-nil when the type cannot encode in mixed mode
	needsAddr bool  // a Packable field requires an addressable value
	fields    []fieldPlan
}

type fieldPlan struct {
	idx      int
	offset   int
	size     int
	class    fieldClass
	order    common.Order // per-field order for mixed mode
	tagged   bool
	mixedCap bool // untagged mixed handling is available
	elemSize int
	arrayLen int
	sub      *structPlan
}

// compilePlan walks t's fields in declaration order, assigning each a byte
// range at the running sum of the preceding widths. Types without a fixed
// packed length and malformed endian tags are rejected here, before any
// encode or decode can run.
func compilePlan(t reflect.Type) (*structPlan, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}
	p := &structPlan{typ: t}
	off := 0
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // skip unexported
		}

		f := fieldPlan{idx: i, offset: off}
		if tag, ok := sf.Tag.Lookup("endian"); ok {
			order, ok := common.ParseOrder(tag)
			if !ok {
				return nil, fmt.Errorf("%w: field %s.%s: unknown endian tag %q",
					ErrEndianTag, t.Name(), sf.Name, tag)
			}
			f.order = order
			f.tagged = true
		}

		ft := sf.Type
		switch {
		case reflect.PointerTo(ft).Implements(packableType):
			f.class = classPackable
			f.size = reflect.New(ft).Interface().(Packable).PackedLen()
			f.mixedCap = reflect.PointerTo(ft).Implements(mixedType)
			p.needsAddr = true
		case common.IsFixedKind(ft.Kind()):
			f.class = classPrim
			f.size = common.FixedSize(ft.Kind())
			f.mixedCap = f.size == 1
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Uint8:
			f.class = classBytes
			f.size = ft.Len()
			f.mixedCap = true
		case ft.Kind() == reflect.Array && common.IsFixedKind(ft.Elem().Kind()):
			f.class = classArray
			f.elemSize = common.FixedSize(ft.Elem().Kind())
			f.arrayLen = ft.Len()
			f.size = f.arrayLen * f.elemSize
			f.mixedCap = f.elemSize == 1
		case ft.Kind() == reflect.Struct:
			sub, err := compilePlan(ft)
			if err != nil {
				return nil, err
			}
			f.class = classStruct
			f.size = sub.size
			f.sub = sub
			f.mixedCap = sub.meErr == nil
			if sub.needsAddr {
				p.needsAddr = true
			}
		default:
			return nil, fmt.Errorf("%w: field %s.%s: %s has no fixed packed length",
				ErrUnsupported, t.Name(), sf.Name, ft)
		}

		if p.meErr == nil && !f.tagged && !f.mixedCap {
			p.meErr = fmt.Errorf("%w: field %s.%s: multi-byte field needs an endian tag in mixed mode",
				ErrEndianTag, t.Name(), sf.Name)
		}

		off += f.size
		p.fields = append(p.fields, f)
	}
	p.size = off
	return p, nil
}
