package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionLeft) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionLeft)
	if !f.Has(ActionLeft) {
		t.Error("Has(ActionLeft) should be true after Set")
	}
	if f.Has(ActionRight) {
		t.Error("Has(ActionRight) should be false")
	}
}

func TestInputFrameMergeAndClear(t *testing.T) {
	a := NewInputFrame()
	a.Set(ActionPause)
	a.AddPointer(PointerEvent{Kind: PointerDown, X: 10, Y: 2, FieldW: 80, FieldH: 20})

	b := NewInputFrame()
	b.Set(ActionRight)
	b.AddPointer(PointerEvent{Kind: PointerMove, X: 12, Y: 2, FieldW: 80, FieldH: 20})

	a.Merge(b)
	if !a.Has(ActionPause) || !a.Has(ActionRight) {
		t.Error("Merge should keep actions from both frames")
	}
	if len(a.Pointer) != 2 || a.Pointer[0].Kind != PointerDown || a.Pointer[1].Kind != PointerMove {
		t.Errorf("Merge should append pointer samples in order, got %+v", a.Pointer)
	}

	clone := a.Clone()
	a.Clear()
	if !a.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !clone.Has(ActionRight) || len(clone.Pointer) != 2 {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" || ActionStop.String() != "Stop" {
		t.Error("unexpected action names")
	}
	if Action(99).String() != "Unknown" {
		t.Error("out of range action should be Unknown")
	}
}
