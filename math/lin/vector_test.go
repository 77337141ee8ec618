// SPDX-FileCopyrightText : © 2014-2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lin

import (
	"testing"
)

// While the functions below are not complicated, they are foundational such that it is
// better to test each one of them then have the bugs discovered later from other code.
// Where applicable, check that the output vector can also be used as one or both
// of the input vectors.

func TestSetV3(t *testing.T) {
	v, a := &V3{}, &V3{1, 2, 3}
	if !v.Set(a).Eq(a) {
		t.Errorf("%s is not the same as %s", v.Dump(), a.Dump())
	}
}

func TestAddV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{1, 2, 3}, &V3{-1, -2, -3}, &V3{0, 0, 0}
	if !v.Add(a, b).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestSubV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{1, 2, 3}, &V3{1, 1, 1}, &V3{0, 1, 2}
	if !v.Sub(a, b).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestScaleV3(t *testing.T) {
	v, a, want := &V3{}, &V3{1, 2, 3}, &V3{2, 4, 6}
	if !v.Scale(a, 2).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestDivV3(t *testing.T) {
	v, want := &V3{2, 4, 6}, &V3{1, 2, 3}
	if !v.Div(2).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
	if v.Div(0); !v.Eq(want) {
		t.Errorf("dividing by zero should be a no-op")
	}
}

func TestDotV3(t *testing.T) {
	v, a := &V3{1, 2, 3}, &V3{4, 5, 6}
	if got, want := v.Dot(a), 32.0; got != want {
		t.Errorf("got %f want %f", got, want)
	}
}

func TestLenV3(t *testing.T) {
	v := &V3{3, 4, 0}
	if got, want := v.Len(), 5.0; !Aeq(got, want) {
		t.Errorf("got %f want %f", got, want)
	}
	if got, want := v.LenSqr(), 25.0; !Aeq(got, want) {
		t.Errorf("got %f want %f", got, want)
	}
}

func TestUnitV3(t *testing.T) {
	v, want := &V3{0, 5, 0}, &V3{0, 1, 0}
	if !v.Unit().Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
	z := &V3{0, 0, 0}
	if !z.Unit().Eq(&V3{0, 0, 0}) {
		t.Error("unit of a zero length vector should be a no-op")
	}
}

func TestCrossV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{1, 0, 0}, &V3{0, 1, 0}, &V3{0, 0, 1}
	if !v.Cross(a, b).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestLerpV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{0, 0, 0}, &V3{10, 10, 10}, &V3{5, 5, 5}
	if !v.Lerp(a, b, 0.5).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestAeqV3(t *testing.T) {
	a, b := &V3{1, 2, 3}, &V3{1.0000001, 2, 3}
	if !a.Aeq(b) {
		t.Errorf("%s should almost-equal %s", a.Dump(), b.Dump())
	}
}
