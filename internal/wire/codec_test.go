package wire

import (
	"bytes"
	"testing"
)

func TestHeaderEncodeDecodeRoundtrip(t *testing.T) {
	h := Header{ObjectID: 0xdeadbeef, MethodID: 3, Size: 24}
	buf := make([]byte, HeaderSize)
	h.Encode(buf)

	got := DecodeHeader(buf)
	if got != h {
		t.Fatalf("decoded header %+v, want %+v", got, h)
	}
}

func TestFixedRoundtrip(t *testing.T) {
	cases := []float64{0, 1, -1, 3.5, -100.25, 0.00390625}
	for _, v := range cases {
		f := NewFixed(v)
		if got := f.Float64(); got != v {
			t.Fatalf("NewFixed(%v).Float64() = %v", v, got)
		}
	}
}

func TestBodySizeMismatchedArgs(t *testing.T) {
	if _, err := BodySize("uu", []Arg{ArgU(1)}); err == nil {
		t.Fatal("expected error for signature/argument count mismatch")
	}
}

func TestBodySizeMixedSignature(t *testing.T) {
	args := []Arg{ArgU(1), ArgStr("hi"), ArgI(-2), ArgFD(7)}
	size, err := BodySize("usih", args)
	if err != nil {
		t.Fatalf("BodySize: %v", err)
	}
	// u=4, s="hi"(2+1=3 -> padded 4) + 4-byte length prefix = 8, i=4, h=0
	want := uint16(4 + 8 + 4 + 0)
	if size != want {
		t.Fatalf("BodySize = %d, want %d", size, want)
	}
}

func TestEncodeDecodeArgsRoundtrip(t *testing.T) {
	sig := "iufso"
	args := []Arg{
		ArgI(-42),
		ArgU(42),
		ArgFixedVal(NewFixed(12.5)),
		ArgStr("hello"),
		ArgObj(7),
	}

	var buf bytes.Buffer
	fd, err := EncodeArgs(&buf, sig, args)
	if err != nil {
		t.Fatalf("EncodeArgs: %v", err)
	}
	if fd != -1 {
		t.Fatalf("expected no fd, got %d", fd)
	}

	decoded, err := DecodeArgs(buf.Bytes(), sig, -1)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if len(decoded) != len(args) {
		t.Fatalf("decoded %d args, want %d", len(decoded), len(args))
	}
	if decoded[0].Int != -42 {
		t.Fatalf("arg0.Int = %d, want -42", decoded[0].Int)
	}
	if decoded[1].UInt != 42 {
		t.Fatalf("arg1.UInt = %d, want 42", decoded[1].UInt)
	}
	if decoded[2].FixedVal.Float64() != 12.5 {
		t.Fatalf("arg2.FixedVal = %v, want 12.5", decoded[2].FixedVal.Float64())
	}
	if decoded[3].Str != "hello" {
		t.Fatalf("arg3.Str = %q, want hello", decoded[3].Str)
	}
	if decoded[4].UInt != 7 {
		t.Fatalf("arg4.UInt = %d, want 7", decoded[4].UInt)
	}
}

func TestEncodeArgsFileDescriptor(t *testing.T) {
	var buf bytes.Buffer
	fd, err := EncodeArgs(&buf, "h", []Arg{ArgFD(11)})
	if err != nil {
		t.Fatalf("EncodeArgs: %v", err)
	}
	if fd != 11 {
		t.Fatalf("fd = %d, want 11", fd)
	}
	if buf.Len() != 0 {
		t.Fatalf("fd argument should contribute no wire bytes, got %d", buf.Len())
	}

	decoded, err := DecodeArgs(nil, "h", 11)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if decoded[0].FD != 11 {
		t.Fatalf("decoded fd = %d, want 11", decoded[0].FD)
	}
}

func TestEncodeArgsRejectsSecondFD(t *testing.T) {
	var buf bytes.Buffer
	if _, err := EncodeArgs(&buf, "hh", []Arg{ArgFD(1), ArgFD(2)}); err == nil {
		t.Fatal("expected error for a second fd argument")
	}
}

func TestDecodeArgsShortBody(t *testing.T) {
	if _, err := DecodeArgs([]byte{1, 2}, "u", -1); err == nil {
		t.Fatal("expected short-read error decoding a u32 from 2 bytes")
	}
}

func TestDecodeArgsUnknownSignatureChar(t *testing.T) {
	if _, err := DecodeArgs(nil, "z", -1); err == nil {
		t.Fatal("expected error for unknown signature character")
	}
}

func TestStringWirePadding(t *testing.T) {
	var buf bytes.Buffer
	if _, err := EncodeArgs(&buf, "s", []Arg{ArgStr("ab")}); err != nil {
		t.Fatalf("EncodeArgs: %v", err)
	}
	// length prefix (4) + "ab\0" (3) padded to 4 = 8 total
	if buf.Len() != 8 {
		t.Fatalf("encoded string length = %d, want 8", buf.Len())
	}
}
