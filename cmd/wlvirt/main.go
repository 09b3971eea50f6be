// Command wlvirt is a CLI demo of the runtime: it injects pointer motion,
// clicks, scrolls, typed text, clipboard contents, and recorded macros
// into whatever Wayland compositor WAYLAND_DISPLAY points at.
package main

func main() {
	Execute()
}
