package gen

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/rawbytedev/endianpack/internal/common"
)

// Generate parses the file at path and returns formatted Go source with
// packed codec methods for the selected types (all marked types when names
// is empty).
func Generate(path string, names []string) ([]byte, error) {
	f, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	layouts, err := f.Layouts(names)
	if err != nil {
		return nil, err
	}
	return Emit(f.Package, layouts)
}

type emitter struct {
	b        strings.Builder
	needMath bool
	needBin  bool
}

// Emit renders codec methods for the layouts into one formatted source file.
func Emit(pkg string, layouts []Layout) ([]byte, error) {
	var e emitter
	for _, l := range layouts {
		e.layout(&l)
	}

	var out strings.Builder
	out.WriteString("// Code generated by endianpackgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", pkg)
	out.WriteString("import (\n")
	if e.needBin {
		out.WriteString("\t\"encoding/binary\"\n")
	}
	out.WriteString("\t\"fmt\"\n")
	if e.needMath {
		out.WriteString("\t\"math\"\n")
	}
	out.WriteString("\n\t\"github.com/rawbytedev/endianpack\"\n)\n\n")
	out.WriteString(e.b.String())

	return format.Source([]byte(out.String()))
}

func (e *emitter) layout(l *Layout) {
	fmt.Fprintf(&e.b, "// PackedLen reports the packed byte length of %s.\n", l.Name)
	fmt.Fprintf(&e.b, "func (v *%s) PackedLen() int { return %d }\n\n", l.Name, l.Size)

	e.codec(l, "EncodeLE", common.Little, false)
	e.codec(l, "EncodeBE", common.Big, false)
	e.codec(l, "DecodeLE", common.Little, false)
	e.codec(l, "DecodeBE", common.Big, false)
	if l.Mixed {
		e.codec(l, "EncodeME", common.Little, true)
		e.codec(l, "DecodeME", common.Little, true)
	}
}

func (e *emitter) codec(l *Layout, method string, order common.Order, mixed bool) {
	decode := strings.HasPrefix(method, "Decode")
	fmt.Fprintf(&e.b, "func (v *%s) %s(buf []byte) error {\n", l.Name, method)
	fmt.Fprintf(&e.b, "\tif len(buf) != %d {\n", l.Size)
	fmt.Fprintf(&e.b, "\t\treturn fmt.Errorf(\"%%w: %s packs into %d bytes, got %%d\", endianpack.ErrBufferLen, len(buf))\n", l.Name, l.Size)
	e.b.WriteString("\t}\n")
	for i := range l.Fields {
		f := &l.Fields[i]
		fo := order
		if mixed {
			fo = f.Order
		}
		if decode {
			e.get(f, fo, mixed)
		} else {
			e.put(f, fo, mixed)
		}
	}
	e.b.WriteString("\treturn nil\n}\n\n")
}

func (e *emitter) put(f *Field, o common.Order, mixed bool) {
	a, b := f.Offset, f.Offset+f.Size
	switch f.Kind {
	case KindPrim:
		e.putPrim(f.Type, "v."+f.Name, fmt.Sprintf("buf[%d:%d]", a, b), o)
	case KindBytes:
		fmt.Fprintf(&e.b, "\tcopy(buf[%d:%d], v.%s[:])\n", a, b, f.Name)
	case KindArray:
		fmt.Fprintf(&e.b, "\tfor i := 0; i < %d; i++ {\n\t", f.Len)
		e.putPrim(f.Elem, fmt.Sprintf("v.%s[i]", f.Name), fmt.Sprintf("buf[%d+i*%d:]", a, f.ElemSize), o)
		e.b.WriteString("\t}\n")
	case KindStruct, KindPackable:
		fmt.Fprintf(&e.b, "\tif err := v.%s.%s(buf[%d:%d]); err != nil {\n\t\treturn err\n\t}\n",
			f.Name, delegate("Encode", o, mixed && !f.Tagged), a, b)
	}
}

func (e *emitter) get(f *Field, o common.Order, mixed bool) {
	a, b := f.Offset, f.Offset+f.Size
	switch f.Kind {
	case KindPrim:
		e.getPrim(f.Type, "v."+f.Name, fmt.Sprintf("buf[%d:%d]", a, b), o)
	case KindBytes:
		fmt.Fprintf(&e.b, "\tcopy(v.%s[:], buf[%d:%d])\n", f.Name, a, b)
	case KindArray:
		fmt.Fprintf(&e.b, "\tfor i := 0; i < %d; i++ {\n\t", f.Len)
		e.getPrim(f.Elem, fmt.Sprintf("v.%s[i]", f.Name), fmt.Sprintf("buf[%d+i*%d:]", a, f.ElemSize), o)
		e.b.WriteString("\t}\n")
	case KindStruct, KindPackable:
		fmt.Fprintf(&e.b, "\tif err := v.%s.%s(buf[%d:%d]); err != nil {\n\t\treturn err\n\t}\n",
			f.Name, delegate("Decode", o, mixed && !f.Tagged), a, b)
	}
}

// delegate picks the method a nested layout is driven through. An untagged
// nested layout inside a mixed record keeps its own per-field orders.
func delegate(op string, o common.Order, ownTags bool) string {
	if ownTags {
		return op + "ME"
	}
	if o == common.Big {
		return op + "BE"
	}
	return op + "LE"
}

func (e *emitter) putPrim(typ, src, dst string, o common.Order) {
	bo := o.GoName()
	switch typ {
	case "bool":
		// dst is a full-slice expression only for single-byte fields
		fmt.Fprintf(&e.b, "\tif %s {\n\t\t%s = 1\n\t} else {\n\t\t%s = 0\n\t}\n", src, byteAt(dst), byteAt(dst))
	case "uint8", "byte":
		fmt.Fprintf(&e.b, "\t%s = %s\n", byteAt(dst), src)
	case "int8":
		fmt.Fprintf(&e.b, "\t%s = byte(%s)\n", byteAt(dst), src)
	case "uint16":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s.PutUint16(%s, %s)\n", bo, dst, src)
	case "int16":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s.PutUint16(%s, uint16(%s))\n", bo, dst, src)
	case "uint32":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s.PutUint32(%s, %s)\n", bo, dst, src)
	case "int32":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s.PutUint32(%s, uint32(%s))\n", bo, dst, src)
	case "uint64":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s.PutUint64(%s, %s)\n", bo, dst, src)
	case "int64":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s.PutUint64(%s, uint64(%s))\n", bo, dst, src)
	case "float32":
		e.needBin, e.needMath = true, true
		fmt.Fprintf(&e.b, "\t%s.PutUint32(%s, math.Float32bits(%s))\n", bo, dst, src)
	case "float64":
		e.needBin, e.needMath = true, true
		fmt.Fprintf(&e.b, "\t%s.PutUint64(%s, math.Float64bits(%s))\n", bo, dst, src)
	}
}

func (e *emitter) getPrim(typ, dst, src string, o common.Order) {
	bo := o.GoName()
	switch typ {
	case "bool":
		fmt.Fprintf(&e.b, "\t%s = %s != 0\n", dst, byteAt(src))
	case "uint8", "byte":
		fmt.Fprintf(&e.b, "\t%s = %s\n", dst, byteAt(src))
	case "int8":
		fmt.Fprintf(&e.b, "\t%s = int8(%s)\n", dst, byteAt(src))
	case "uint16":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s = %s.Uint16(%s)\n", dst, bo, src)
	case "int16":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s = int16(%s.Uint16(%s))\n", dst, bo, src)
	case "uint32":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s = %s.Uint32(%s)\n", dst, bo, src)
	case "int32":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s = int32(%s.Uint32(%s))\n", dst, bo, src)
	case "uint64":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s = %s.Uint64(%s)\n", dst, bo, src)
	case "int64":
		e.needBin = true
		fmt.Fprintf(&e.b, "\t%s = int64(%s.Uint64(%s))\n", dst, bo, src)
	case "float32":
		e.needBin, e.needMath = true, true
		fmt.Fprintf(&e.b, "\t%s = math.Float32frombits(%s.Uint32(%s))\n", dst, bo, src)
	case "float64":
		e.needBin, e.needMath = true, true
		fmt.Fprintf(&e.b, "\t%s = math.Float64frombits(%s.Uint64(%s))\n", dst, bo, src)
	}
}

// byteAt rewrites a one-byte range expression into an index expression,
// e.g. buf[4:5] -> buf[4] and buf[8+i*1:] -> buf[8+i*1].
func byteAt(rng string) string {
	if i := strings.IndexByte(rng, ':'); i >= 0 {
		return rng[:i] + "]"
	}
	return rng
}
