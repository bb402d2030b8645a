package trigger

import "testing"

func TestOnceZeroValueIsIdle(t *testing.T) {
	var o Once[int]
	if o.Fired() {
		t.Error("zero Once should not be fired")
	}
	if o.State() != Idle {
		t.Errorf("State = %v, want idle", o.State())
	}
	if _, ok := o.Value(); ok {
		t.Error("Value ok = true before Fire")
	}
}

func TestOnceFiresExactlyOnce(t *testing.T) {
	var o Once[string]
	if !o.Fire("first") {
		t.Fatal("first Fire should report the transition")
	}
	for i := 0; i < 5; i++ {
		if o.Fire("later") {
			t.Fatalf("Fire #%d reported a second transition", i+2)
		}
	}
	v, ok := o.Value()
	if !ok || v != "first" {
		t.Errorf("Value = (%q, %v), want (\"first\", true)", v, ok)
	}
	if o.State() != Activated {
		t.Errorf("State = %v, want activated", o.State())
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Activated.String() != "activated" {
		t.Errorf("String() = %q/%q", Idle.String(), Activated.String())
	}
}
