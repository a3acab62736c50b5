package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	sides, err := parseList[int]("64, 128,,256")
	require.NoError(t, err)
	require.Equal(t, []int{64, 128, 256}, sides)

	_, err = parseList[uint64]("12,x")
	require.Error(t, err)

	_, err = parseList[int](" ")
	require.Error(t, err)
}

func TestScenarioEnginesAgree(t *testing.T) {
	a := runScenario(scenario{engine: "hashlife", side: 24, density: 0.3, seed: 1, steps: 50})
	b := runScenario(scenario{engine: "life", side: 24, density: 0.3, seed: 1, steps: 50})
	require.Equal(t, b.population, a.population)
}
