package endianpack

import (
	"encoding/binary"
	"fmt"
)

// Uint128 is an unsigned 128-bit value packed into 16 bytes. It implements
// Packable, so it composes into records like any other fixed-width primitive.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

func (u Uint128) PackedLen() int { return 16 }

func (u *Uint128) EncodeLE(buf []byte) error {
	if err := check128(buf); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(buf[0:8], u.Lo)
	binary.LittleEndian.PutUint64(buf[8:16], u.Hi)
	return nil
}

func (u *Uint128) EncodeBE(buf []byte) error {
	if err := check128(buf); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(buf[0:8], u.Hi)
	binary.BigEndian.PutUint64(buf[8:16], u.Lo)
	return nil
}

func (u *Uint128) DecodeLE(buf []byte) error {
	if err := check128(buf); err != nil {
		return err
	}
	u.Lo = binary.LittleEndian.Uint64(buf[0:8])
	u.Hi = binary.LittleEndian.Uint64(buf[8:16])
	return nil
}

func (u *Uint128) DecodeBE(buf []byte) error {
	if err := check128(buf); err != nil {
		return err
	}
	u.Hi = binary.BigEndian.Uint64(buf[0:8])
	u.Lo = binary.BigEndian.Uint64(buf[8:16])
	return nil
}

// Int128 is a signed 128-bit value packed into 16 bytes, two's complement.
type Int128 struct {
	Hi int64
	Lo uint64
}

func (i Int128) PackedLen() int { return 16 }

func (i *Int128) EncodeLE(buf []byte) error {
	u := Uint128{Hi: uint64(i.Hi), Lo: i.Lo}
	return u.EncodeLE(buf)
}

func (i *Int128) EncodeBE(buf []byte) error {
	u := Uint128{Hi: uint64(i.Hi), Lo: i.Lo}
	return u.EncodeBE(buf)
}

func (i *Int128) DecodeLE(buf []byte) error {
	var u Uint128
	if err := u.DecodeLE(buf); err != nil {
		return err
	}
	i.Hi, i.Lo = int64(u.Hi), u.Lo
	return nil
}

func (i *Int128) DecodeBE(buf []byte) error {
	var u Uint128
	if err := u.DecodeBE(buf); err != nil {
		return err
	}
	i.Hi, i.Lo = int64(u.Hi), u.Lo
	return nil
}

func check128(buf []byte) error {
	if len(buf) != 16 {
		return fmt.Errorf("%w: 128-bit value packs into 16 bytes, got %d", ErrBufferLen, len(buf))
	}
	return nil
}
