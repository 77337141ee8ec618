package interp

import (
	"testing"

	"github.com/gazed/ember"
	"github.com/gazed/ember/variation"
)

func flameWith(weight float64) *ember.Ember {
	x := &ember.Xform{Pre: ember.IdentityAffine2D(), Weight: weight}
	x.SetPost(ember.IdentityAffine2D())
	x.RegularVars = []variation.Entry{{Var: variation.MustLookup("linear"), Weight: 1}}
	return &ember.Ember{
		Width: 100, Height: 100, Supersample: 1,
		CenterX: 0, CenterY: 0, Zoom: 1,
		Xforms: []*ember.Xform{x},
	}
}

func TestBlendMidpointAveragesWeights(t *testing.T) {
	a, b := flameWith(1), flameWith(3)
	out := Blend(a, b, 0.5)
	if len(out.Xforms) != 1 {
		t.Fatalf("expected 1 xform, got %d", len(out.Xforms))
	}
	if got := out.Xforms[0].Weight; got != 2 {
		t.Errorf("got weight %v, want 2", got)
	}
}

func TestAlignXformsPadsShorterList(t *testing.T) {
	a := flameWith(1)
	b := flameWith(1)
	b.Xforms = append(b.Xforms, flameWith(1).Xforms[0])

	alignedA, alignedB := AlignXforms(a.Xforms, b.Xforms)
	if len(alignedA) != len(alignedB) {
		t.Fatalf("alignment lengths differ: %d vs %d", len(alignedA), len(alignedB))
	}
	if len(alignedA) != 2 {
		t.Errorf("expected alignment to pad up to 2, got %d", len(alignedA))
	}
}

func TestAtBracketsKeyframes(t *testing.T) {
	kfs := []Keyframe{
		{T: 0, Ember: flameWith(1)},
		{T: 1, Ember: flameWith(5)},
	}
	out := At(kfs, 0.5, Linear)
	if got := out.Xforms[0].Weight; got != 3 {
		t.Errorf("got weight %v, want 3", got)
	}
}
