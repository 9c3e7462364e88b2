package endianpack

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rawbytedev/endianpack/internal/common"
)

// Codec compiles and caches a layout plan per struct type, then drives
// encode/decode through the plan. A Codec is safe for concurrent use;
// buffers are caller-owned and never retained.
type Codec struct {
	mu    sync.RWMutex
	plans map[reflect.Type]*planEntry
}

type planEntry struct {
	plan *structPlan
	err  error
}

func NewCodec() *Codec {
	return &Codec{plans: make(map[reflect.Type]*planEntry)}
}

func (c *Codec) getPlan(t reflect.Type) (*structPlan, error) {
	c.mu.RLock()
	if e, ok := c.plans[t]; ok {
		c.mu.RUnlock()
		return e.plan, e.err
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check
	if e, ok := c.plans[t]; ok {
		return e.plan, e.err
	}
	plan, err := compilePlan(t)
	c.plans[t] = &planEntry{plan: plan, err: err}
	return plan, err
}

// PackedLen reports the packed byte length of val's type. val may be a
// struct or a pointer to one.
func (c *Codec) PackedLen(val any) (int, error) {
	t := reflect.TypeOf(val)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return 0, ErrNotStruct
	}
	plan, err := c.getPlan(t)
	if err != nil {
		return 0, err
	}
	return plan.size, nil
}

// EncodeLE encodes val into buf with every field little-endian.
// len(buf) must equal the type's packed length exactly.
func (c *Codec) EncodeLE(val any, buf []byte) error {
	return c.encode(val, buf, common.Little, false)
}

// EncodeBE encodes val into buf with every field big-endian.
func (c *Codec) EncodeBE(val any, buf []byte) error {
	return c.encode(val, buf, common.Big, false)
}

// EncodeME encodes val into buf using each field's own endian tag.
func (c *Codec) EncodeME(val any, buf []byte) error {
	return c.encode(val, buf, common.Little, true)
}

// DecodeLE decodes buf into out with every field little-endian.
// out must be a pointer to a struct; len(buf) must equal the packed length.
func (c *Codec) DecodeLE(buf []byte, out any) error {
	return c.decode(buf, out, common.Little, false)
}

// DecodeBE decodes buf into out with every field big-endian.
func (c *Codec) DecodeBE(buf []byte, out any) error {
	return c.decode(buf, out, common.Big, false)
}

// DecodeME decodes buf into out using each field's own endian tag.
func (c *Codec) DecodeME(buf []byte, out any) error {
	return c.decode(buf, out, common.Little, true)
}

func (c *Codec) encode(val any, buf []byte, order common.Order, mixed bool) error {
	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ErrNotStruct
	}
	plan, err := c.getPlan(v.Type())
	if err != nil {
		return err
	}
	if mixed && plan.meErr != nil {
		return plan.meErr
	}
	if len(buf) != plan.size {
		return fmt.Errorf("%w: %s packs into %d bytes, got %d",
			ErrBufferLen, v.Type(), plan.size, len(buf))
	}
	if plan.needsAddr && !v.CanAddr() {
		pv := reflect.New(v.Type())
		pv.Elem().Set(v)
		v = pv.Elem()
	}
	return encodeStruct(plan, v, buf, order, mixed)
}

func (c *Codec) decode(buf []byte, out any, order common.Order, mixed bool) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return ErrNotStructPtr
	}
	dst := v.Elem()
	plan, err := c.getPlan(dst.Type())
	if err != nil {
		return err
	}
	if mixed && plan.meErr != nil {
		return plan.meErr
	}
	if len(buf) != plan.size {
		return fmt.Errorf("%w: %s packs into %d bytes, got %d",
			ErrBufferLen, dst.Type(), plan.size, len(buf))
	}
	return decodeStruct(plan, dst, buf, order, mixed)
}

func encodeStruct(p *structPlan, v reflect.Value, buf []byte, order common.Order, mixed bool) error {
	for i := range p.fields {
		f := &p.fields[i]
		fo := order
		if mixed {
			fo = f.order
		}
		b := buf[f.offset : f.offset+f.size]
		fv := v.Field(f.idx)
		switch f.class {
		case classPrim:
			common.PutFixed(b, fv, fo.ByteOrder())
		case classBytes:
			reflect.Copy(reflect.ValueOf(b), fv)
		case classArray:
			bo := fo.ByteOrder()
			for j := 0; j < f.arrayLen; j++ {
				common.PutFixed(b[j*f.elemSize:(j+1)*f.elemSize], fv.Index(j), bo)
			}
		case classStruct:
			// an untagged nested struct keeps its own per-field tags
			sub := mixed && !f.tagged
			if err := encodeStruct(f.sub, fv, b, fo, sub); err != nil {
				return err
			}
		case classPackable:
			pk := fv.Addr().Interface().(Packable)
			var err error
			switch {
			case mixed && !f.tagged:
				err = pk.(MixedPackable).EncodeME(b)
			case fo == common.Big:
				err = pk.EncodeBE(b)
			default:
				err = pk.EncodeLE(b)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeStruct(p *structPlan, v reflect.Value, buf []byte, order common.Order, mixed bool) error {
	for i := range p.fields {
		f := &p.fields[i]
		fo := order
		if mixed {
			fo = f.order
		}
		b := buf[f.offset : f.offset+f.size]
		fv := v.Field(f.idx)
		switch f.class {
		case classPrim:
			common.GetFixed(fv, b, fo.ByteOrder())
		case classBytes:
			reflect.Copy(fv, reflect.ValueOf(b))
		case classArray:
			bo := fo.ByteOrder()
			for j := 0; j < f.arrayLen; j++ {
				common.GetFixed(fv.Index(j), b[j*f.elemSize:(j+1)*f.elemSize], bo)
			}
		case classStruct:
			sub := mixed && !f.tagged
			if err := decodeStruct(f.sub, fv, b, fo, sub); err != nil {
				return err
			}
		case classPackable:
			pk := fv.Addr().Interface().(Packable)
			var err error
			switch {
			case mixed && !f.tagged:
				err = pk.(MixedPackable).DecodeME(b)
			case fo == common.Big:
				err = pk.DecodeBE(b)
			default:
				err = pk.DecodeLE(b)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
