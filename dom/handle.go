package dom

// NodeHandle is an opaque reference to a node in a Document's arena.
// It pairs a slot index with a generation counter: when a slot is freed
// and later reused, its generation is bumped, so a handle taken before
// the free can never resolve to the reused node. Handles may be copied
// and held freely; resolving a stale handle yields "absent", never a
// crash.
type NodeHandle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the null handle. The zero NodeHandle
// never resolves to a node (live generations start at 1).
func (h NodeHandle) IsZero() bool {
	return h.generation == 0
}

// slot is a single arena cell. A dead slot keeps its generation so the
// next occupant is distinguishable from the previous one.
type slot struct {
	generation uint32
	live       bool
	node       Node
}

// arena is a slice-backed store of nodes addressed by NodeHandle.
// Freed slots go on a free list and are reused with a bumped
// generation.
type arena struct {
	slots []slot
	free  []uint32
	count int
}

// insert stores node in a free slot (or a new one) and returns its
// handle.
func (a *arena) insert(node Node) NodeHandle {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.generation++
		s.live = true
		s.node = node
		return NodeHandle{index: idx, generation: s.generation}
	}
	a.slots = append(a.slots, slot{generation: 1, live: true, node: node})
	return NodeHandle{index: uint32(len(a.slots) - 1), generation: 1}
}

// get returns the node for h, or nil if h is stale or unknown.
func (a *arena) get(h NodeHandle) *Node {
	if h.generation == 0 || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil
	}
	return &s.node
}

// remove frees the slot for h and returns its payload. Removing a
// stale or unknown handle is a no-op.
func (a *arena) remove(h NodeHandle) (Node, bool) {
	n := a.get(h)
	if n == nil {
		return Node{}, false
	}
	removed := *n
	s := &a.slots[h.index]
	s.live = false
	s.node = Node{}
	a.free = append(a.free, h.index)
	a.count--
	return removed, true
}

// len returns the number of live nodes.
func (a *arena) len() int {
	return a.count
}
