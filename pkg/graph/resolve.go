package graph

import "github.com/matzehuels/boxroute/pkg/spec"

// resolveChunk is the width of the sub-ranges scanned by resolve.
const resolveChunk = 64

// endpointMatch records the block indices found for a connection's start and
// end names; -1 means not (yet) found.
type endpointMatch struct {
	start, end int
}

var noMatch = endpointMatch{start: -1, end: -1}

func (m endpointMatch) complete() bool { return m.start >= 0 && m.end >= 0 }

// merge combines matches from two sub-ranges. Fields already found in m win,
// so merging ranges in order yields the first occurrence of each name.
func (m endpointMatch) merge(o endpointMatch) endpointMatch {
	if m.start < 0 {
		m.start = o.start
	}
	if m.end < 0 {
		m.end = o.end
	}
	return m
}

// scan searches blocks for both endpoint names at once. offset is the arena
// index of blocks[0].
func scan(blocks []Block, offset int, cs spec.ConnectionSpec) endpointMatch {
	m := noMatch
	for i := range blocks {
		name := blocks[i].Spec.Name
		if m.start < 0 && name == cs.Start {
			m.start = offset + i
		}
		if m.end < 0 && name == cs.End {
			m.end = offset + i
		}
		if m.complete() {
			break
		}
	}
	return m
}

// resolve finds the start and end blocks of cs by scanning the arena in
// disjoint sub-ranges and merging the partial results.
func resolve(blocks []Block, cs spec.ConnectionSpec) endpointMatch {
	m := noMatch
	for lo := 0; lo < len(blocks) && !m.complete(); lo += resolveChunk {
		hi := min(lo+resolveChunk, len(blocks))
		m = m.merge(scan(blocks[lo:hi], lo, cs))
	}
	return m
}
