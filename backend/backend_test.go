package backend

import "testing"

func TestRegistry(t *testing.T) {
	if !contains(Available(), NameImage) {
		t.Fatalf("Available() = %v, missing %q", Available(), NameImage)
	}
	if !contains(Available(), NameRecord) {
		t.Fatalf("Available() = %v, missing %q", Available(), NameRecord)
	}

	if bk := Get(NameImage); bk == nil || bk.Name() != NameImage {
		t.Errorf("Get(%q) = %v", NameImage, bk)
	}
	if bk := Get("no-such-backend"); bk != nil {
		t.Errorf("Get(unknown) = %v, want nil", bk)
	}

	// Image is the highest-priority registered backend.
	if bk := Default(); bk == nil || bk.Name() != NameImage {
		t.Errorf("Default() = %v, want image backend", bk)
	}
}

func TestRegisterReplaceAndUnregister(t *testing.T) {
	Register("custom", func() Backend { return NewRecordBackend() })
	defer Unregister("custom")

	if bk := Get("custom"); bk == nil {
		t.Fatal("Get(custom) = nil after Register")
	}

	Unregister("custom")
	if bk := Get("custom"); bk != nil {
		t.Errorf("Get(custom) = %v after Unregister, want nil", bk)
	}
}

func TestBaseSkeletons(t *testing.T) {
	f := baseFactory{}

	sk := f.NewNodeSkeleton()
	sk.Move(3, 4)
	sk.Resize(2, 1)
	sk.Orient(0.5)
	if x, y := sk.Position(); x != 3 || y != 4 {
		t.Errorf("Position() = (%v, %v), want (3, 4)", x, y)
	}
	if w, h := sk.Size(); w != 2 || h != 1 {
		t.Errorf("Size() = (%v, %v), want (2, 1)", w, h)
	}
	if got := sk.Orientation(); got != 0.5 {
		t.Errorf("Orientation() = %v, want 0.5", got)
	}

	es := f.NewEdgeSkeleton()
	es.SetEnds(0, 0, 4, 2)
	if x, y := es.Position(); x != 2 || y != 1 {
		t.Errorf("edge Position() = (%v, %v), want midpoint (2, 1)", x, y)
	}
	if w, h := es.Size(); w != 4 || h != 2 {
		t.Errorf("edge Size() = (%v, %v), want (4, 2)", w, h)
	}
	if x1, y1, x2, y2 := es.Ends(); x1 != 0 || y1 != 0 || x2 != 4 || y2 != 2 {
		t.Errorf("Ends() = (%v,%v,%v,%v), want (0,0,4,2)", x1, y1, x2, y2)
	}
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
