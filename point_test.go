package ember

import "testing"

func TestPointSetCopies(t *testing.T) {
	src := &Point{X: 1, Y: 2, Z: 3, Color: 0.5, LastXform: 4}
	dst := &Point{}
	dst.Set(src)
	if *dst != *src {
		t.Errorf("Set() = %+v, want copy of %+v", dst, src)
	}
}

func TestPointSetXYPreservesColorAndXform(t *testing.T) {
	p := &Point{X: 1, Y: 1, Color: 0.75, LastXform: 2}
	p.SetXY(-3, 4)
	if p.X != -3 || p.Y != 4 {
		t.Errorf("SetXY did not update location: %+v", p)
	}
	if p.Color != 0.75 || p.LastXform != 2 {
		t.Errorf("SetXY disturbed color/xform bookkeeping: %+v", p)
	}
}
