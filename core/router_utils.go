package core

import "fmt"

func (e RouterEvent) String() string {
	switch e {
	case RouterInitialized:
		return "RouterInitialized"
	case TableRelaxed:
		return "TableRelaxed"
	case RouteChanged:
		return "RouteChanged"
	case LinkCostChanged:
		return "LinkCostChanged"
	case VectorAdvertised:
		return "VectorAdvertised"
	case NeighbourUp:
		return "NeighbourUp"
	case ProtocolViolation:
		return "ProtocolViolation"
	case InvalidLink:
		return "InvalidLink"
	}
	return fmt.Sprintf("RouterEvent(%d)", int(e))
}

// IsWarn reports whether the event signals a rejected input.
func (e RouterEvent) IsWarn() bool {
	return e >= 1000
}
