package state

import "fmt"

// Packet is a distance vector advertisement from Src to its neighbour Dst.
type Packet struct {
	Src    NodeId
	Dst    NodeId
	Vector DistanceVector
}

// NewPacket copies vec so the sender can keep mutating its own tables.
func NewPacket(src, dst NodeId, vec DistanceVector) Packet {
	return Packet{
		Src:    src,
		Dst:    dst,
		Vector: vec.Clone(),
	}
}

func (p Packet) String() string {
	return fmt.Sprintf("%d->%d %v", p.Src, p.Dst, p.Vector.Costs())
}
