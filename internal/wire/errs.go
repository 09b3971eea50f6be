package wire

import (
	"fmt"
	"sync"
)

// Code mirrors enum xdwl_errors from the reference implementation, one
// value per failure kind the core can report.
type Code int

const (
	CodeNone Code = iota
	CodeStd
	CodeEnv
	CodeIDTaken
	CodeNullArg
	CodeNullObject
	CodeNullRequest
	CodeNullEvent
	CodeNullInterface
	CodeNullListener
	CodeSockConnect
	CodeSockSend
	CodeSockRecv
	CodeNoFreeBit
	CodeOutOfRange
	CodeNoProtoXML
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeStd:
		return "STD"
	case CodeEnv:
		return "ENV"
	case CodeIDTaken:
		return "ID_TAKEN"
	case CodeNullArg:
		return "NULL_ARG"
	case CodeNullObject:
		return "NULL_OBJECT"
	case CodeNullRequest:
		return "NULL_REQUEST"
	case CodeNullEvent:
		return "NULL_EVENT"
	case CodeNullInterface:
		return "NULL_INTERFACE"
	case CodeNullListener:
		return "NULL_LISTENER"
	case CodeSockConnect:
		return "SOCK_CONNECT"
	case CodeSockSend:
		return "SOCK_SEND"
	case CodeSockRecv:
		return "SOCK_RECV"
	case CodeNoFreeBit:
		return "NO_FREE_BIT"
	case CodeOutOfRange:
		return "OUT_OF_RANGE"
	case CodeNoProtoXML:
		return "NO_PROTO_XML"
	default:
		return "UNKNOWN"
	}
}

// Err is the concrete error type the core returns; callers that only care
// about the message can treat it as a plain error, but Code is available
// for callers that need to branch on failure kind.
type Err struct {
	Code    Code
	Message string
}

func (e *Err) Error() string { return e.Message }

func newErr(code Code, format string, args ...interface{}) *Err {
	return &Err{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorChannel is a single-slot, newest-wins error sink, one instance per
// Display so independently constructed connections never stomp on each
// other's last error.
type ErrorChannel struct {
	mu   sync.Mutex
	code Code
	msg  string
}

// Set replaces the current error, discarding any previous one.
func (c *ErrorChannel) Set(err *Err) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code = err.Code
	c.msg = err.Message
}

// CodeValue returns the last error code, or CodeNone if nothing has been set
// since the last Print.
func (c *ErrorChannel) CodeValue() Code {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code
}

// Print writes the current message to stderr (via the supplied sink) and
// clears the slot.
func (c *ErrorChannel) Print(sink func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.code == CodeNone {
		return
	}
	sink(c.msg)
	c.code = CodeNone
	c.msg = ""
}
