package block

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitnessZeroCases(t *testing.T) {
	assert.Equal(t, 0.0, Fitness(0, 10))
	assert.Equal(t, 0.0, Fitness(5, 0))
	assert.Equal(t, 0.0, Fitness(-1, 10))
}

func TestFitnessUniform(t *testing.T) {
	// N events over width N (rate 1/unit) => N*ln(1) == 0.
	assert.InDelta(t, 0.0, Fitness(10, 10), 1e-12)
}

func TestFitnessMonotoneInDensity(t *testing.T) {
	low := Fitness(10, 100)
	high := Fitness(10, 10)
	assert.Greater(t, high, low)
}

func TestEmpiricalPrior(t *testing.T) {
	gamma, err := EmpiricalPrior(100, 0.05)
	assert.NoError(t, err)
	want := 4 - math.Log(73.53*0.05*math.Pow(100, -0.478))
	assert.InDelta(t, want, gamma, 1e-9)
}

func TestEmpiricalPriorOutOfRange(t *testing.T) {
	_, err := EmpiricalPrior(100, 2)
	assert.Error(t, err)
	_, err = EmpiricalPrior(100, -1)
	assert.Error(t, err)
}

func TestExplicitPriorNegative(t *testing.T) {
	_, err := ExplicitPrior(-1)
	assert.Error(t, err)
	gamma, err := ExplicitPrior(3.5)
	assert.NoError(t, err)
	assert.Equal(t, 3.5, gamma)
}

func TestPriorExactlyOne(t *testing.T) {
	p0 := 0.05
	prior := 1.0
	_, err := Prior(10, &p0, &prior)
	assert.Error(t, err)
	_, err = Prior(10, nil, nil)
	assert.Error(t, err)
	g, err := Prior(10, nil, &prior)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, g)
}

func TestMonotonePrior(t *testing.T) {
	// Lowering p0 must not decrease gamma (spec testable property 7).
	gHigh, _ := EmpiricalPrior(100, 0.1)
	gLow, _ := EmpiricalPrior(100, 0.01)
	assert.GreaterOrEqual(t, gLow, gHigh)
}
