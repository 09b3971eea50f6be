package registry

import "testing"

func TestRegisterAndLookup(t *testing.T) {
	iface := &Interface{
		Name: "test_registry_interface",
		Requests: []Method{
			{Name: "do_thing", ArgCount: 1, Signature: "u"},
		},
		Events: []Method{
			{Name: "done", ArgCount: 0, Signature: ""},
		},
	}
	Register(iface)

	got, err := Lookup("test_registry_interface")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != iface {
		t.Fatal("Lookup should return the exact registered pointer")
	}
	if len(got.Requests) != 1 || got.Requests[0].Name != "do_thing" {
		t.Fatalf("unexpected Requests: %+v", got.Requests)
	}
}

func TestLookupUnknownInterface(t *testing.T) {
	if _, err := Lookup("nonexistent_interface_xyz"); err == nil {
		t.Fatal("expected error looking up an unregistered interface")
	}
}
