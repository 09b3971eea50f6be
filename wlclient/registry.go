package wlclient

import (
	"sync"

	"github.com/wlvirt/virtual-input/internal/wire"
)

// Global is one compositor-advertised global object.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// GlobalHandler is invoked when a global matching the interface it was
// registered for is announced.
type GlobalHandler func(registry *Registry, name uint32, version uint32)

// Registry wraps the wl_registry object: the set of currently announced
// globals, and per-interface bind-time handlers (component 4.11).
type Registry struct {
	id       uint32
	display  *Display
	mu       sync.RWMutex
	globals  map[uint32]Global
	handlers map[string]GlobalHandler
}

// ID implements Proxy.
func (r *Registry) ID() uint32 { return r.id }

// HandleEvent implements EventHandler for wl_registry's two events:
// global (method 0) and global_remove (method 1).
func (r *Registry) HandleEvent(methodID uint16, args []wire.Arg) {
	switch methodID {
	case 0: // global(name, interface, version); args[0] is the registry id
		if len(args) != 4 {
			return
		}
		name := args[1].UInt
		iface := args[2].Str
		version := args[3].UInt

		r.mu.Lock()
		r.globals[name] = Global{Name: name, Interface: iface, Version: version}
		handler := r.handlers[iface]
		r.mu.Unlock()

		if handler != nil {
			handler(r, name, version)
		}

	case 1: // global_remove(name)
		if len(args) != 2 {
			return
		}
		r.mu.Lock()
		delete(r.globals, args[1].UInt)
		r.mu.Unlock()
	}
}

// OnGlobal registers handler to be called whenever a global advertising
// ifaceName is announced, including any already-known global of that name.
func (r *Registry) OnGlobal(ifaceName string, handler GlobalHandler) {
	r.mu.Lock()
	r.handlers[ifaceName] = handler
	var already []Global
	for _, g := range r.globals {
		if g.Interface == ifaceName {
			already = append(already, g)
		}
	}
	r.mu.Unlock()

	for _, g := range already {
		handler(r, g.Name, g.Version)
	}
}

// Globals returns a snapshot of every currently announced global.
func (r *Registry) Globals() map[uint32]Global {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uint32]Global, len(r.globals))
	for k, v := range r.globals {
		out[k] = v
	}
	return out
}

// Find returns the first announced global advertising ifaceName.
func (r *Registry) Find(ifaceName string) (Global, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.globals {
		if g.Interface == ifaceName {
			return g, true
		}
	}
	return Global{}, false
}

// Bind allocates a client id for target, registers it under ifaceName, and
// sends wl_registry.bind(name, ifaceName, version, new_id) — component
// 4.11. target is registered before the request is sent so any event the
// server fires immediately after binding can already be dispatched to it.
func (r *Registry) Bind(name uint32, ifaceName string, version uint32, target Proxy) error {
	id, err := r.display.Register(0, ifaceName)
	if err != nil {
		return err
	}
	if setter, ok := target.(IDSetter); ok {
		setter.SetID(id)
	}
	args := []wire.Arg{wire.ArgU(name), wire.ArgStr(ifaceName), wire.ArgU(version), wire.ArgNew(id)}
	if err := r.display.SendRequest(r.id, 0, args); err != nil {
		r.display.Unregister(id)
		return err
	}
	return nil
}
