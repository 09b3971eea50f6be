// Package virtual_keyboard provides Go bindings for the
// virtual-keyboard-unstable-v1 Wayland protocol.
//
// This protocol allows clients to emulate a physical keyboard device. The
// virtual keyboard provides an application with requests which emulate
// the behaviour of a physical keyboard. This interface can be used by
// clients on its own to provide raw input events, or it can accompany the
// input method protocol.
package virtual_keyboard

import (
	"fmt"
	"os"
	"time"

	"github.com/wlvirt/virtual-input/internal/client"
	"github.com/wlvirt/virtual-input/internal/protocols"
	"golang.org/x/sys/unix"
)

// Key constants (Linux input event codes).
const (
	KEY_RESERVED   = 0
	KEY_ESC        = 1
	KEY_1          = 2
	KEY_2          = 3
	KEY_3          = 4
	KEY_4          = 5
	KEY_5          = 6
	KEY_6          = 7
	KEY_7          = 8
	KEY_8          = 9
	KEY_9          = 10
	KEY_0          = 11
	KEY_MINUS      = 12
	KEY_EQUAL      = 13
	KEY_BACKSPACE  = 14
	KEY_TAB        = 15
	KEY_Q          = 16
	KEY_W          = 17
	KEY_E          = 18
	KEY_R          = 19
	KEY_T          = 20
	KEY_Y          = 21
	KEY_U          = 22
	KEY_I          = 23
	KEY_O          = 24
	KEY_P          = 25
	KEY_LEFTBRACE  = 26
	KEY_RIGHTBRACE = 27
	KEY_ENTER      = 28
	KEY_LEFTCTRL   = 29
	KEY_A          = 30
	KEY_S          = 31
	KEY_D          = 32
	KEY_F          = 33
	KEY_G          = 34
	KEY_H          = 35
	KEY_J          = 36
	KEY_K          = 37
	KEY_L          = 38
	KEY_SEMICOLON  = 39
	KEY_APOSTROPHE = 40
	KEY_GRAVE      = 41
	KEY_LEFTSHIFT  = 42
	KEY_BACKSLASH  = 43
	KEY_Z          = 44
	KEY_X          = 45
	KEY_C          = 46
	KEY_V          = 47
	KEY_B          = 48
	KEY_N          = 49
	KEY_M          = 50
	KEY_COMMA      = 51
	KEY_DOT        = 52
	KEY_SLASH      = 53
	KEY_RIGHTSHIFT = 54
	KEY_KPASTERISK = 55
	KEY_LEFTALT    = 56
	KEY_SPACE      = 57
	KEY_CAPSLOCK   = 58
	KEY_F1         = 59
	KEY_F2         = 60
	KEY_F3         = 61
	KEY_F4         = 62
	KEY_F5         = 63
	KEY_F6         = 64
	KEY_F7         = 65
	KEY_F8         = 66
	KEY_F9         = 67
	KEY_F10        = 68
	KEY_NUMLOCK    = 69
	KEY_SCROLLLOCK = 70
	KEY_KP7        = 71
	KEY_KP8        = 72
	KEY_KP9        = 73
	KEY_KPMINUS    = 74
	KEY_KP4        = 75
	KEY_KP5        = 76
	KEY_KP6        = 77
	KEY_KPPLUS     = 78
	KEY_KP1        = 79
	KEY_KP2        = 80
	KEY_KP3        = 81
	KEY_KP0        = 82
	KEY_KPDOT      = 83
	KEY_F11        = 87
	KEY_F12        = 88
	KEY_KPENTER    = 96
	KEY_RIGHTCTRL  = 97
	KEY_KPSLASH    = 98
	KEY_SYSRQ      = 99
	KEY_RIGHTALT   = 100
	KEY_HOME       = 102
	KEY_UP         = 103
	KEY_PAGEUP     = 104
	KEY_LEFT       = 105
	KEY_RIGHT      = 106
	KEY_END        = 107
	KEY_DOWN       = 108
	KEY_PAGEDOWN   = 109
	KEY_INSERT     = 110
	KEY_DELETE     = 111
	KEY_LEFTMETA   = 125
	KEY_RIGHTMETA  = 126
)

// Key state constants.
const (
	KEY_STATE_RELEASED = protocols.KeyStateReleased
	KEY_STATE_PRESSED  = protocols.KeyStatePressed
)

// Modifier bitmask constants.
const (
	MOD_SHIFT = 1 << 0
	MOD_CAPS  = 1 << 1
	MOD_CTRL  = 1 << 2
	MOD_ALT   = 1 << 3
	MOD_NUM   = 1 << 4
	MOD_MOD3  = 1 << 5
	MOD_LOGO  = 1 << 6
	MOD_MOD5  = 1 << 7
)

// Keymap format constants.
const (
	KEYMAP_FORMAT_NO_KEYMAP = protocols.KeymapFormatNoKeymap
	KEYMAP_FORMAT_XKB_V1    = protocols.KeymapFormatXKBV1
)

// VirtualKeyboardManager owns the Wayland connection and the bound
// zwp_virtual_keyboard_manager_v1 global.
type VirtualKeyboardManager struct {
	client  *client.Client
	manager *protocols.VirtualKeyboardManager
}

// VirtualKeyboard represents a virtual keyboard device.
type VirtualKeyboard struct {
	keyboard     *protocols.VirtualKeyboard
	keymapLoaded bool
}

// NewVirtualKeyboardManager connects to the compositor at socketPath
// (empty string resolves WAYLAND_DISPLAY) and binds the virtual keyboard
// manager.
func NewVirtualKeyboardManager(socketPath string) (*VirtualKeyboardManager, error) {
	c, err := client.Connect(socketPath)
	if err != nil {
		return nil, fmt.Errorf("virtual_keyboard: failed to connect: %w", err)
	}
	mgr, err := c.KeyboardManager()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("virtual_keyboard: %w", err)
	}
	return &VirtualKeyboardManager{client: c, manager: mgr}, nil
}

// CreateVirtualKeyboard creates a new virtual keyboard tied to the
// compositor's seat and uploads the default US-QWERTY XKB keymap.
func (m *VirtualKeyboardManager) CreateVirtualKeyboard() (*VirtualKeyboard, error) {
	seat, err := m.client.Seat()
	if err != nil {
		return nil, fmt.Errorf("virtual_keyboard: %w", err)
	}
	kb, err := m.manager.CreateVirtualKeyboard(seat)
	if err != nil {
		return nil, fmt.Errorf("virtual_keyboard: failed to create virtual keyboard: %w", err)
	}

	vk := &VirtualKeyboard{keyboard: kb}
	fd, size, err := CreateDefaultKeymap()
	if err != nil {
		return nil, fmt.Errorf("virtual_keyboard: failed to build default keymap: %w", err)
	}
	if err := vk.keyboard.Keymap(KEYMAP_FORMAT_XKB_V1, fd, size); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("virtual_keyboard: failed to upload keymap: %w", err)
	}
	unix.Close(fd)
	vk.keymapLoaded = true
	return vk, nil
}

// Close releases the virtual keyboard manager and the underlying
// connection.
func (m *VirtualKeyboardManager) Close() error {
	return m.client.Close()
}

// CreateDefaultKeymap writes a minimal US-QWERTY XKB keymap to a temporary
// file, removes the file's name, and returns a duplicated file descriptor
// (owned by the caller) and the keymap's byte size.
func CreateDefaultKeymap() (int, uint32, error) {
	const keymap = `xkb_keymap {
	xkb_keycodes  { include "evdev+aliases(qwerty)" };
	xkb_types     { include "complete" };
	xkb_compat    { include "complete" };
	xkb_symbols   { include "pc+us+inet(evdev)" };
	xkb_geometry  { include "pc(pc105)" };
};`

	file, err := os.CreateTemp("", "wlvirt-keymap-*.xkb")
	if err != nil {
		return -1, 0, err
	}
	defer file.Close()
	defer os.Remove(file.Name())

	if _, err := file.WriteString(keymap); err != nil {
		return -1, 0, err
	}

	fd, err := unix.Dup(int(file.Fd()))
	if err != nil {
		return -1, 0, err
	}
	return fd, uint32(len(keymap)), nil
}

// Key sends a key press/release event stamped with timeMS. KeyPress and
// KeyRelease stamp the current time.
func (k *VirtualKeyboard) Key(timeMS, key, state uint32) error {
	return k.keyboard.Key(timeMS, key, state)
}

// Modifiers updates the modifier and group state.
func (k *VirtualKeyboard) Modifiers(modsDepressed, modsLatched, modsLocked, group uint32) error {
	return k.keyboard.Modifiers(modsDepressed, modsLatched, modsLocked, group)
}

// Destroy destroys the virtual keyboard object.
func (k *VirtualKeyboard) Destroy() error {
	return k.keyboard.Destroy()
}

// KeyPress is a convenience method for pressing a key.
func (k *VirtualKeyboard) KeyPress(key uint32) error {
	return k.Key(nowMS(), key, KEY_STATE_PRESSED)
}

// KeyRelease is a convenience method for releasing a key.
func (k *VirtualKeyboard) KeyRelease(key uint32) error {
	return k.Key(nowMS(), key, KEY_STATE_RELEASED)
}

// TypeKey performs a complete key press and release.
func TypeKey(keyboard *VirtualKeyboard, key uint32) error {
	if err := keyboard.KeyPress(key); err != nil {
		return err
	}
	return keyboard.KeyRelease(key)
}

// TypeString types a string by converting it to key events. This is a
// simplified implementation that only handles basic ASCII characters.
func TypeString(keyboard *VirtualKeyboard, text string) error {
	for _, char := range text {
		key, needsShift := charToKey(char)
		if key == 0 {
			continue
		}
		if needsShift {
			if err := keyboard.KeyPress(KEY_LEFTSHIFT); err != nil {
				return err
			}
		}
		if err := TypeKey(keyboard, key); err != nil {
			if needsShift {
				keyboard.KeyRelease(KEY_LEFTSHIFT)
			}
			return err
		}
		if needsShift {
			if err := keyboard.KeyRelease(KEY_LEFTSHIFT); err != nil {
				return err
			}
		}
	}
	return nil
}

// shiftedKey is the keycode/shift pair needed to type one character.
type shiftedKey struct {
	key   uint32
	shift bool
}

// nonLetterKeys covers every typeable character whose keycode isn't a
// simple offset from KEY_A or KEY_0: whitespace, digits (evdev numbers
// them 1-9 then 0, so no arithmetic applies), and punctuation, including
// the shifted symbol sharing each digit/punctuation key on a US layout.
var nonLetterKeys = map[rune]shiftedKey{
	' ':  {KEY_SPACE, false},
	'\t': {KEY_TAB, false},
	'\n': {KEY_ENTER, false},

	'0': {KEY_0, false}, ')': {KEY_0, true},
	'1': {KEY_1, false}, '!': {KEY_1, true},
	'2': {KEY_2, false}, '@': {KEY_2, true},
	'3': {KEY_3, false}, '#': {KEY_3, true},
	'4': {KEY_4, false}, '$': {KEY_4, true},
	'5': {KEY_5, false}, '%': {KEY_5, true},
	'6': {KEY_6, false}, '^': {KEY_6, true},
	'7': {KEY_7, false}, '&': {KEY_7, true},
	'8': {KEY_8, false}, '*': {KEY_8, true},
	'9': {KEY_9, false}, '(': {KEY_9, true},

	'-': {KEY_MINUS, false}, '_': {KEY_MINUS, true},
	'=': {KEY_EQUAL, false}, '+': {KEY_EQUAL, true},
	'[': {KEY_LEFTBRACE, false}, '{': {KEY_LEFTBRACE, true},
	']': {KEY_RIGHTBRACE, false}, '}': {KEY_RIGHTBRACE, true},
	'\\': {KEY_BACKSLASH, false}, '|': {KEY_BACKSLASH, true},
	';': {KEY_SEMICOLON, false}, ':': {KEY_SEMICOLON, true},
	'\'': {KEY_APOSTROPHE, false}, '"': {KEY_APOSTROPHE, true},
	'`': {KEY_GRAVE, false}, '~': {KEY_GRAVE, true},
	',': {KEY_COMMA, false}, '<': {KEY_COMMA, true},
	'.': {KEY_DOT, false}, '>': {KEY_DOT, true},
	'/': {KEY_SLASH, false}, '?': {KEY_SLASH, true},
}

// charToKey converts a character to its key code and whether shift is
// needed. Letters are a direct offset from KEY_A since evdev numbers them
// in alphabetical order; everything else comes from nonLetterKeys.
func charToKey(char rune) (uint32, bool) {
	switch {
	case char >= 'a' && char <= 'z':
		return KEY_A + uint32(char-'a'), false
	case char >= 'A' && char <= 'Z':
		return KEY_A + uint32(char-'A'), true
	}
	if k, ok := nonLetterKeys[char]; ok {
		return k.key, k.shift
	}
	return 0, false
}

// SetModifiers sets the modifier state with no locked/latched bits.
func SetModifiers(keyboard *VirtualKeyboard, modifiers uint32) error {
	return keyboard.Modifiers(modifiers, 0, 0, 0)
}

// PressModifiers presses the specified modifier keys.
func PressModifiers(keyboard *VirtualKeyboard, modifiers uint32) error {
	if modifiers&MOD_SHIFT != 0 {
		if err := keyboard.KeyPress(KEY_LEFTSHIFT); err != nil {
			return err
		}
	}
	if modifiers&MOD_CTRL != 0 {
		if err := keyboard.KeyPress(KEY_LEFTCTRL); err != nil {
			return err
		}
	}
	if modifiers&MOD_ALT != 0 {
		if err := keyboard.KeyPress(KEY_LEFTALT); err != nil {
			return err
		}
	}
	if modifiers&MOD_LOGO != 0 {
		if err := keyboard.KeyPress(KEY_LEFTMETA); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseModifiers releases the specified modifier keys.
func ReleaseModifiers(keyboard *VirtualKeyboard, modifiers uint32) error {
	if modifiers&MOD_SHIFT != 0 {
		if err := keyboard.KeyRelease(KEY_LEFTSHIFT); err != nil {
			return err
		}
	}
	if modifiers&MOD_CTRL != 0 {
		if err := keyboard.KeyRelease(KEY_LEFTCTRL); err != nil {
			return err
		}
	}
	if modifiers&MOD_ALT != 0 {
		if err := keyboard.KeyRelease(KEY_LEFTALT); err != nil {
			return err
		}
	}
	if modifiers&MOD_LOGO != 0 {
		if err := keyboard.KeyRelease(KEY_LEFTMETA); err != nil {
			return err
		}
	}
	return nil
}

// KeyCombo performs a key combination (e.g. Ctrl+C).
func KeyCombo(keyboard *VirtualKeyboard, modifiers uint32, key uint32) error {
	if err := PressModifiers(keyboard, modifiers); err != nil {
		return err
	}
	if err := TypeKey(keyboard, key); err != nil {
		ReleaseModifiers(keyboard, modifiers)
		return err
	}
	return ReleaseModifiers(keyboard, modifiers)
}

func nowMS() uint32 {
	return uint32(time.Now().UnixMilli())
}
