package state

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCost_Saturates(t *testing.T) {
	assert.Equal(t, Cost(3), AddCost(1, 2))
	assert.Equal(t, INF, AddCost(INF, 0))
	assert.Equal(t, INF, AddCost(0, INF))
	assert.Equal(t, INF, AddCost(INF, INF))
	assert.Equal(t, INF, AddCost(INF-1, 1))
	assert.Equal(t, INF, AddCost(5000, 5000))
	assert.Equal(t, INF-1, AddCost(INF-2, 1))
}

func TestParseCost(t *testing.T) {
	cases := map[string]Cost{
		"0":           0,
		"17":          17,
		" 3 ":         3,
		"inf":         INF,
		"INF":         INF,
		"unreachable": INF,
		`"inf"`:       INF,
		"99999":       INF,
	}
	for in, want := range cases {
		got, err := ParseCost(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseCost("far")
	assert.ErrorContains(t, err, "invalid cost")
}

func TestCostString(t *testing.T) {
	assert.Equal(t, "12", Cost(12).String())
	assert.Equal(t, "inf", INF.String())
	assert.Equal(t, "inf", (INF + 5).String())
}

func TestCostYaml(t *testing.T) {
	var costs []Cost
	err := yaml.Unmarshal([]byte("[0, 4, inf, \"unreachable\"]"), &costs)
	require.NoError(t, err)
	assert.Equal(t, []Cost{0, 4, INF, INF}, costs)

	out, err := yaml.Marshal(map[string]Cost{"a": 3, "b": INF})
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: 3")
	assert.Contains(t, string(out), "b: inf")
}

func TestCostToml(t *testing.T) {
	var v struct {
		Costs []Cost `toml:"costs"`
	}
	err := toml.Unmarshal([]byte(`costs = [0, 4, "inf"]`), &v)
	require.NoError(t, err)
	assert.Equal(t, []Cost{0, 4, INF}, v.Costs)
}

func TestDeserializeInvalid(t *testing.T) {
	var costs []Cost
	err := yaml.Unmarshal([]byte("[0, far]"), &costs)
	assert.ErrorContains(t, err, "invalid cost")
}
