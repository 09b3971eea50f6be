// Package wire implements the Wayland wire format: header framing,
// 24.8 fixed-point numbers, length-prefixed strings, and the bitmap/hash-map
// primitives the object and listener registries are built on.
package wire

import (
	"bytes"
	"encoding/binary"
	"math"
)

// HeaderSize is the fixed 8-byte object_id/method_id/total_size prefix.
const HeaderSize = 8

// Fixed is a 24.8 fixed-point number, as used for the 'f' signature code.
type Fixed int32

// Float64 converts a Fixed back to a float64.
func (f Fixed) Float64() float64 { return float64(f) / 256.0 }

// NewFixed converts a float64 to 24.8 fixed point, per the wire spec
// (round(value * 256.0) into a signed 32-bit value).
func NewFixed(v float64) Fixed { return Fixed(math.Round(v * 256.0)) }

// Header is the 8-byte frame prefix common to every request and event.
type Header struct {
	ObjectID uint32
	MethodID uint16
	Size     uint16 // includes the header itself
}

// Encode writes the header into the first 8 bytes of dst.
func (h Header) Encode(dst []byte) {
	binary.LittleEndian.PutUint32(dst[0:4], h.ObjectID)
	binary.LittleEndian.PutUint16(dst[4:6], h.MethodID)
	binary.LittleEndian.PutUint16(dst[6:8], h.Size)
}

// DecodeHeader reads a Header from the first 8 bytes of src.
func DecodeHeader(src []byte) Header {
	return Header{
		ObjectID: binary.LittleEndian.Uint32(src[0:4]),
		MethodID: binary.LittleEndian.Uint16(src[4:6]),
		Size:     binary.LittleEndian.Uint16(src[6:8]),
	}
}

// stringWireLen returns the bytes a string argument occupies on the wire:
// a u32 length (including the trailing NUL), the bytes plus NUL, then
// zero-padding to the next 4-byte boundary.
func stringWireLen(s string) int {
	n := len(s) + 1
	padded := (n + 3) &^ 3
	return 4 + padded
}

// BodySize walks sig and sums the per-argument wire width of args.
func BodySize(sig string, args []Arg) (uint16, error) {
	if sig == "" {
		return 0, nil
	}
	if len(sig) != len(args) {
		return 0, newErr(CodeNullArg, "codec: signature %q expects %d args, got %d", sig, len(sig), len(args))
	}
	var size int
	for i, c := range sig {
		switch c {
		case 'i', 'u', 'f', 'o', 'n':
			size += 4
		case 's':
			size += stringWireLen(args[i].Str)
		case 'h':
			// transported out of band; zero bytes on the wire
		default:
			return 0, newErr(CodeStd, "codec: unknown signature char %q", c)
		}
	}
	return uint16(size), nil
}

// EncodeArgs appends the wire encoding of args (in signature order) to buf.
// It returns the file descriptor of the single 'h' argument, or -1 if none
// is present.
func EncodeArgs(buf *bytes.Buffer, sig string, args []Arg) (int, error) {
	fd := -1
	if sig == "" {
		return fd, nil
	}
	if len(sig) != len(args) {
		return fd, newErr(CodeNullArg, "codec: signature %q expects %d args, got %d", sig, len(sig), len(args))
	}
	var tmp [4]byte
	for i, c := range sig {
		a := args[i]
		switch c {
		case 'i':
			binary.LittleEndian.PutUint32(tmp[:], uint32(a.Int))
			buf.Write(tmp[:])
		case 'u', 'o', 'n':
			binary.LittleEndian.PutUint32(tmp[:], a.UInt)
			buf.Write(tmp[:])
		case 'f':
			binary.LittleEndian.PutUint32(tmp[:], uint32(a.FixedVal))
			buf.Write(tmp[:])
		case 's':
			strlen := len(a.Str) + 1
			binary.LittleEndian.PutUint32(tmp[:], uint32(strlen))
			buf.Write(tmp[:])
			buf.WriteString(a.Str)
			buf.WriteByte(0)
			if pad := (4 - strlen%4) % 4; pad > 0 {
				buf.Write(make([]byte, pad))
			}
		case 'h':
			if fd != -1 {
				return fd, newErr(CodeNullArg, "codec: at most one fd argument per message")
			}
			fd = a.FD
		default:
			return fd, newErr(CodeStd, "codec: unknown signature char %q", c)
		}
	}
	return fd, nil
}

// DecodeArgs decodes body per sig into a slice of Args in signature order.
// An 'h' slot is filled with fd (the ancillary fd received alongside the
// message, or -1 if none arrived).
func DecodeArgs(body []byte, sig string, fd int) ([]Arg, error) {
	if sig == "" {
		return nil, nil
	}
	out := make([]Arg, len(sig))
	off := 0
	for i, c := range sig {
		switch c {
		case 'i':
			v, err := readU32(body, &off)
			if err != nil {
				return nil, err
			}
			out[i] = ArgI(int32(v))
		case 'u':
			v, err := readU32(body, &off)
			if err != nil {
				return nil, err
			}
			out[i] = ArgU(v)
		case 'o', 'n':
			v, err := readU32(body, &off)
			if err != nil {
				return nil, err
			}
			out[i] = ArgObj(v)
		case 'f':
			v, err := readU32(body, &off)
			if err != nil {
				return nil, err
			}
			out[i] = ArgFixedVal(Fixed(int32(v)))
		case 's':
			s, err := readString(body, &off)
			if err != nil {
				return nil, err
			}
			out[i] = ArgStr(s)
		case 'h':
			out[i] = ArgFD(fd)
		default:
			return nil, newErr(CodeStd, "codec: unknown signature char %q", c)
		}
	}
	return out, nil
}

func readU32(body []byte, off *int) (uint32, error) {
	if *off+4 > len(body) {
		return 0, newErr(CodeNullArg, "codec: short read decoding u32 at offset %d", *off)
	}
	v := binary.LittleEndian.Uint32(body[*off : *off+4])
	*off += 4
	return v, nil
}

func readString(body []byte, off *int) (string, error) {
	n, err := readU32(body, off)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	end := *off + int(n)
	if end > len(body) || n == 0 {
		return "", newErr(CodeNullArg, "codec: short read decoding string at offset %d", *off)
	}
	s := string(body[*off : end-1]) // drop trailing NUL
	padded := (int(n) + 3) &^ 3
	*off += padded
	return s, nil
}
