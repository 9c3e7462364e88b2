// Package gen generates fixed-layout codec methods from Go source. It is
// the offline counterpart of the reflection codec in the root package: the
// same layout rules, but with offsets folded into emitted code.
package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/rawbytedev/endianpack/internal/common"
)

// directive in a struct's doc comment opts it into generation.
const directive = "endianpack:layout"

type FieldKind int

const (
	KindPrim     FieldKind = iota // fixed-width builtin
	KindBytes                     // [N]byte
	KindArray                     // [N]fixed-width builtin
	KindStruct                    // another layout in the same file
	KindPackable                  // endianpack.Uint128 / endianpack.Int128
)

// Field is one resolved struct field with its byte range.
type Field struct {
	Name     string
	Type     string // source type expression
	Kind     FieldKind
	Offset   int
	Size     int
	Order    common.Order
	Tagged   bool
	Elem     string // array element type name
	ElemSize int
	Len      int
}

// Layout is a struct type whose packed size is fully resolved.
type Layout struct {
	Name   string
	Size   int
	Mixed  bool // every field resolves for mixed mode
	Fields []Field
}

// File holds the parsed structs of one source file.
type File struct {
	Package string
	order   []string
	structs map[string]*ast.StructType
	marked  map[string]bool
}

// ParseFile parses the Go source file at path.
func ParseFile(path string) (*File, error) {
	return ParseSource(path, nil)
}

// ParseSource parses src (or the file at name when src is nil).
func ParseSource(name string, src any) (*File, error) {
	fset := token.NewFileSet()
	af, err := parser.ParseFile(fset, name, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	f := &File{
		Package: af.Name.Name,
		structs: make(map[string]*ast.StructType),
		marked:  make(map[string]bool),
	}
	for _, decl := range af.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			f.structs[ts.Name.Name] = st
			f.order = append(f.order, ts.Name.Name)
			if hasDirective(ts.Doc) || hasDirective(gd.Doc) {
				f.marked[ts.Name.Name] = true
			}
		}
	}
	return f, nil
}

func hasDirective(cg *ast.CommentGroup) bool {
	if cg == nil {
		return false
	}
	for _, c := range cg.List {
		if strings.HasPrefix(strings.TrimPrefix(c.Text, "//"), directive) {
			return true
		}
	}
	return false
}

// Layouts resolves the named struct types, or every marked struct when
// names is empty. Nested layout types are resolved and returned too, so
// the emitted methods can delegate to them.
func (f *File) Layouts(names []string) ([]Layout, error) {
	if len(names) == 0 {
		for _, n := range f.order {
			if f.marked[n] {
				names = append(names, n)
			}
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no layout types: none requested and none marked //%s", directive)
	}

	resolved := make(map[string]*Layout)
	for _, n := range names {
		if _, err := f.resolve(n, resolved, nil); err != nil {
			return nil, err
		}
	}

	// declaration order keeps output stable
	var out []Layout
	for _, n := range f.order {
		if l, ok := resolved[n]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *File) resolve(name string, resolved map[string]*Layout, stack []string) (*Layout, error) {
	if l, ok := resolved[name]; ok {
		return l, nil
	}
	for _, s := range stack {
		if s == name {
			return nil, fmt.Errorf("type %s: recursive layout", name)
		}
	}
	st, ok := f.structs[name]
	if !ok {
		return nil, fmt.Errorf("type %s: not a struct declared in this file", name)
	}
	stack = append(stack, name)

	l := &Layout{Name: name, Mixed: true}
	off := 0
	for _, af := range st.Fields.List {
		if len(af.Names) == 0 {
			return nil, fmt.Errorf("type %s: embedded fields are not supported", name)
		}
		for _, id := range af.Names {
			fld := Field{Name: id.Name, Offset: off, Type: typeString(af.Type)}
			if err := f.resolveType(name, &fld, af.Type, resolved, stack); err != nil {
				return nil, err
			}
			if af.Tag != nil {
				tag, err := strconv.Unquote(af.Tag.Value)
				if err != nil {
					return nil, fmt.Errorf("field %s.%s: malformed struct tag", name, fld.Name)
				}
				if val, ok := reflect.StructTag(tag).Lookup("endian"); ok {
					order, ok := common.ParseOrder(val)
					if !ok {
						return nil, fmt.Errorf("field %s.%s: unknown endian tag %q", name, fld.Name, val)
					}
					fld.Order = order
					fld.Tagged = true
				}
			}
			if !fld.Tagged && !mixedCapable(&fld, resolved) {
				l.Mixed = false
			}
			off += fld.Size
			l.Fields = append(l.Fields, fld)
		}
	}
	l.Size = off
	resolved[name] = l
	return l, nil
}

func (f *File) resolveType(owner string, fld *Field, expr ast.Expr, resolved map[string]*Layout, stack []string) error {
	switch t := expr.(type) {
	case *ast.Ident:
		if w := common.NamedWidth(t.Name); w > 0 {
			fld.Kind = KindPrim
			fld.Size = w
			return nil
		}
		sub, err := f.resolve(t.Name, resolved, stack)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", owner, fld.Name, err)
		}
		fld.Kind = KindStruct
		fld.Size = sub.Size
		return nil
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok && x.Name == "endianpack" &&
			(t.Sel.Name == "Uint128" || t.Sel.Name == "Int128") {
			fld.Kind = KindPackable
			fld.Size = 16
			return nil
		}
	case *ast.ArrayType:
		lit, ok := t.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return fmt.Errorf("field %s.%s: slice or unsized array has no fixed packed length", owner, fld.Name)
		}
		n, err := strconv.Atoi(lit.Value)
		if err != nil {
			return fmt.Errorf("field %s.%s: array length %s is not a plain integer", owner, fld.Name, lit.Value)
		}
		elem, ok := t.Elt.(*ast.Ident)
		if !ok {
			return fmt.Errorf("field %s.%s: unsupported array element type", owner, fld.Name)
		}
		w := common.NamedWidth(elem.Name)
		if w <= 0 {
			return fmt.Errorf("field %s.%s: array element %s has no fixed width", owner, fld.Name, elem.Name)
		}
		if elem.Name == "byte" || elem.Name == "uint8" {
			fld.Kind = KindBytes
		} else {
			fld.Kind = KindArray
		}
		fld.Elem = elem.Name
		fld.ElemSize = w
		fld.Len = n
		fld.Size = n * w
		return nil
	}
	return fmt.Errorf("field %s.%s: %s has no fixed packed length", owner, fld.Name, fld.Type)
}

// mixedCapable mirrors the reflection planner: an untagged field joins a
// mixed layout only when its bytes are order-insensitive or it is a nested
// layout that is itself mixed-capable.
func mixedCapable(fld *Field, resolved map[string]*Layout) bool {
	switch fld.Kind {
	case KindPrim:
		return fld.Size == 1
	case KindBytes:
		return true
	case KindArray:
		return fld.ElemSize == 1
	case KindStruct:
		sub := resolved[fld.Type]
		return sub != nil && sub.Mixed
	default:
		return false
	}
}

func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		if lit, ok := t.Len.(*ast.BasicLit); ok {
			return "[" + lit.Value + "]" + typeString(t.Elt)
		}
		return "[]" + typeString(t.Elt)
	default:
		return fmt.Sprintf("%T", expr)
	}
}
