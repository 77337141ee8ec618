package filter

import (
	"math"
	"testing"
)

func TestBuildDensityBankNormalizes(t *testing.T) {
	bank, err := BuildDensityBank(0.5, 5, 1.0, 1)
	if err != nil {
		t.Fatalf("BuildDensityBank: %v", err)
	}
	half := bank.Half()
	for k := 0; k <= bank.KMax; k++ {
		sum := 0.0
		for dj := -half; dj <= half; dj++ {
			for di := -half; di <= half; di++ {
				sum += bank.Coef(k, di, dj)
			}
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("kernel %d sums to %v, want 1", k, sum)
		}
	}
}

func TestBuildDensityBankRefusesHugeBank(t *testing.T) {
	_, err := BuildDensityBank(1e-9, 1e6, 0.01, 4)
	if err == nil {
		t.Errorf("expected an error for a kernel count that exceeds MaxKernels")
	}
}

func TestDensityKernelIndexClampsToMax(t *testing.T) {
	if got := densityKernelIndex(1000, 1.0, 5); got != 5 {
		t.Errorf("got %d, want clamp to 5", got)
	}
}

func TestDensityKernelIndexLowDensity(t *testing.T) {
	if got := densityKernelIndex(0.5, 1.0, 50); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
