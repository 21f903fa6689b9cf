package sim

import (
	"fmt"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/state"
)

// nodeIO connects one node to the simulated network.
type nodeIO struct {
	sim *Simulation
	id  state.NodeId
}

func (n nodeIO) Dispatch(pkt state.Packet) {
	n.sim.transmit(n.id, pkt)
}

func (n nodeIO) Log(event core.RouterEvent, desc string, args ...any) {
	args = append([]any{"node", n.id, "t", n.sim.sched.now}, args...)
	if event.IsWarn() {
		n.sim.log.Warn(fmt.Sprintf("%s %s", event.String(), desc), args...)
	} else {
		n.sim.log.Debug(fmt.Sprintf("%s %s", event.String(), desc), args...)
	}
}

// sanityCheck rejects packets that could not have been put on a link by
// sender.
func sanityCheck(sender state.NodeId, links state.LinkSet, pkt state.Packet) error {
	n := len(links)
	if pkt.Src < 0 || int(pkt.Src) >= n {
		return fmt.Errorf("illegal source %d", pkt.Src)
	}
	if pkt.Dst < 0 || int(pkt.Dst) >= n {
		return fmt.Errorf("illegal destination %d", pkt.Dst)
	}
	if pkt.Src == pkt.Dst {
		return fmt.Errorf("source equals destination %d", pkt.Src)
	}
	if pkt.Src != sender {
		return fmt.Errorf("node %d sent a packet as %d", sender, pkt.Src)
	}
	if links[pkt.Dst].IsInf() {
		return fmt.Errorf("%d and %d are not connected", pkt.Src, pkt.Dst)
	}
	return nil
}
