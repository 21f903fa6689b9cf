package state

const (
	// INF marks an unreachable destination. It is a finite sentinel so that
	// cost arithmetic saturates instead of overflowing into a valid cost.
	INF Cost = 9999
	// NoNode is the undefined next hop / predecessor.
	NoNode NodeId = -1
)

var (
	DefaultMaxDelay  = 2.0       // upper bound of the uniform per-packet delay, in simulated time units
	DefaultMaxEvents = 1_000_000 // guards against runaway count-to-infinity
	DefaultMaxRounds = 1024
)
