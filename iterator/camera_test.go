package iterator

import "testing"

func TestCameraDisabledByDefault(t *testing.T) {
	c := NewCamera(0, 0, 0, 0, 0)
	if c.Enabled() {
		t.Errorf("zero-valued camera reported Enabled")
	}
}

func TestCameraIdentityProjection(t *testing.T) {
	c := NewCamera(0, 0, 0, 1, 0)
	x, y := c.Project(2, 3, 0, 0, 0)
	if x != 2 || y != 3 {
		t.Errorf("got (%v,%v), want (2,3)", x, y)
	}
}

func TestCameraEnabledWithYawOnly(t *testing.T) {
	c := NewCamera(0.5, 0, 0, 0, 0)
	if !c.Enabled() {
		t.Errorf("nonzero yaw should report Enabled")
	}
}
