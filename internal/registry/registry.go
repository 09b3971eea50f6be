// Package registry holds the process-wide, immutable-after-init table of
// Wayland interface descriptors. Protocol packages register their
// descriptors from an init() func; the table is read-only for the
// remainder of the process's lifetime.
package registry

import "fmt"

// Method is a named, positionally addressed request or event. Signature
// being empty means the method takes no wire arguments.
type Method struct {
	Name      string
	ArgCount  int
	Signature string
}

// Interface describes one Wayland protocol interface: its name and its
// request/event method tables, addressed by position (method_id).
type Interface struct {
	Name     string
	Requests []Method
	Events   []Method
}

var table []*Interface

// Register appends interface to the global table. Registration is
// idempotent per descriptor pointer; duplicate names are a programmer
// error and are not detected, matching the reference implementation.
func Register(iface *Interface) {
	for _, existing := range table {
		if existing == iface {
			return
		}
	}
	table = append(table, iface)
}

// Lookup finds a registered interface by name, scanning linearly as the
// reference implementation does (the table is small and read-only).
func Lookup(name string) (*Interface, error) {
	for _, iface := range table {
		if iface.Name == name {
			return iface, nil
		}
	}
	return nil, fmt.Errorf("registry: no interface registered with name %q", name)
}
