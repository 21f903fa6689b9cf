// Package protocol encodes distance vector packets in the protobuf wire format:
//
//	message Packet {
//	  sint64 src = 1;
//	  sint64 dst = 2;
//	  repeated Entry vector = 3;
//	}
//	message Entry {
//	  uint64 cost = 1;
//	  sint64 pred = 2;
//	}
package protocol

import (
	"errors"
	"fmt"

	"github.com/encodeous/dvsim/state"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldSrc    protowire.Number = 1
	fieldDst    protowire.Number = 2
	fieldVector protowire.Number = 3

	fieldCost protowire.Number = 1
	fieldPred protowire.Number = 2
)

var ErrMalformed = errors.New("malformed packet")

func appendSint(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

func Marshal(pkt state.Packet) []byte {
	b := make([]byte, 0, 4+len(pkt.Vector)*6)
	b = appendSint(b, fieldSrc, int64(pkt.Src))
	b = appendSint(b, fieldDst, int64(pkt.Dst))
	entry := make([]byte, 0, 8)
	for _, e := range pkt.Vector {
		entry = entry[:0]
		entry = protowire.AppendTag(entry, fieldCost, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(max(e.Cost, 0)))
		entry = appendSint(entry, fieldPred, int64(e.Pred))
		b = protowire.AppendTag(b, fieldVector, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b
}

func Unmarshal(b []byte) (state.Packet, error) {
	pkt := state.Packet{Src: state.NoNode, Dst: state.NoNode, Vector: make(state.DistanceVector, 0)}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return pkt, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case (num == fieldSrc || num == fieldDst) && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return pkt, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
			if num == fieldSrc {
				pkt.Src = state.NodeId(protowire.DecodeZigZag(v))
			} else {
				pkt.Dst = state.NodeId(protowire.DecodeZigZag(v))
			}
		case num == fieldVector && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return pkt, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
			e, err := unmarshalEntry(v)
			if err != nil {
				return pkt, err
			}
			pkt.Vector = append(pkt.Vector, e)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return pkt, fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return pkt, nil
}

func unmarshalEntry(b []byte) (state.VectorEntry, error) {
	e := state.VectorEntry{Cost: state.INF, Pred: state.NoNode}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return e, fmt.Errorf("%w: entry: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
		if (num == fieldCost || num == fieldPred) && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return e, fmt.Errorf("%w: entry: %w", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
			if num == fieldCost {
				e.Cost = state.Cost(min(v, uint64(state.INF)))
			} else {
				e.Pred = state.NodeId(protowire.DecodeZigZag(v))
			}
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return e, fmt.Errorf("%w: entry field %d: %w", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return e, nil
}
