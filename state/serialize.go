package state

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

type NodeId int

// Cost is a non-negative link or path cost. Any value at or above INF is
// unreachable.
type Cost int

// AddCost adds two costs, saturating at INF.
func AddCost(a, b Cost) Cost {
	if a >= INF || b >= INF {
		return INF
	}
	return min(a+b, INF)
}

// Normalize folds every cost at or above INF into INF.
func (c Cost) Normalize() Cost {
	return min(c, INF)
}

func (c Cost) IsInf() bool {
	return c >= INF
}

func (c Cost) String() string {
	if c.IsInf() {
		return "inf"
	}
	return strconv.Itoa(int(c))
}

func ParseCost(s string) (Cost, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	switch strings.ToLower(s) {
	case "inf", "infinity", "unreachable", "∞":
		return INF, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid cost %q: must be an integer or inf", s)
	}
	return Cost(v).Normalize(), nil
}

func (c Cost) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cost) UnmarshalText(text []byte) error {
	v, err := ParseCost(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Cost) MarshalYAML() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cost) UnmarshalYAML(b []byte) error {
	return c.UnmarshalText(bytes.TrimSpace(b))
}
