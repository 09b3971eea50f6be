package wire

import "testing"

func TestCodeString(t *testing.T) {
	cases := map[Code]string{
		CodeNone:     "none",
		CodeIDTaken:  "ID_TAKEN",
		CodeOutOfRange: "OUT_OF_RANGE",
		Code(999):    "UNKNOWN",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("Code(%d).String() = %q, want %q", code, got, want)
		}
	}
}

func TestErrImplementsError(t *testing.T) {
	e := newErr(CodeNullArg, "bad arg %d", 3)
	if e.Error() != "bad arg 3" {
		t.Fatalf("Error() = %q, want %q", e.Error(), "bad arg 3")
	}
	if e.Code != CodeNullArg {
		t.Fatalf("Code = %v, want CodeNullArg", e.Code)
	}
}

func TestErrorChannelNewestWins(t *testing.T) {
	var ch ErrorChannel
	ch.Set(newErr(CodeSockSend, "first"))
	ch.Set(newErr(CodeSockRecv, "second"))

	if got := ch.CodeValue(); got != CodeSockRecv {
		t.Fatalf("CodeValue() = %v, want CodeSockRecv (newest wins)", got)
	}

	var printed string
	ch.Print(func(msg string) { printed = msg })
	if printed != "second" {
		t.Fatalf("Print sank %q, want %q", printed, "second")
	}
	if got := ch.CodeValue(); got != CodeNone {
		t.Fatalf("CodeValue() after Print = %v, want CodeNone", got)
	}
}

func TestErrorChannelPrintOnEmptyIsNoop(t *testing.T) {
	var ch ErrorChannel
	called := false
	ch.Print(func(string) { called = true })
	if called {
		t.Fatal("Print should not invoke sink when nothing was set")
	}
}

func TestErrorChannelSetNilIsNoop(t *testing.T) {
	var ch ErrorChannel
	ch.Set(newErr(CodeSockSend, "first"))
	ch.Set(nil)
	if got := ch.CodeValue(); got != CodeSockSend {
		t.Fatalf("Set(nil) should not clear the channel, got %v", got)
	}
}
