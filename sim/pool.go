package sim

import "sort"

// Handle identifies a pooled object. The zero Handle is never valid, and a
// Handle whose object was removed stays dead even after its slot is reused.
type Handle struct {
	ID  int
	Gen int
}

func (h Handle) Valid() bool {
	return h.ID > 0
}

type slot struct {
	gen  int
	live bool
	obj  Object
}

// Pool owns all object storage. Slots are reused with a bumped generation so
// stale handles can never reach another object, and an insertion-order id
// list (oldest first) backs iteration and oldest-first eviction.
//
// Remove only marks the slot dead; dead ids are purged from the order list
// lazily at the start of the next walk, so removal stays O(1) and iteration
// during collision or cap passes never sees a dangling slot.
type Pool struct {
	slots []slot
	free  []int // ids safe to reuse, already purged from order
	dead  []int // ids awaiting purge
	order []int
	count int
}

// NewPool creates a pool sized for about capacity objects.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{
		slots: make([]slot, 0, capacity),
		order: make([]int, 0, capacity),
	}
}

// Insert adds an object at the end of the age order and returns its handle.
func (p *Pool) Insert(obj Object) Handle {
	var id int
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.slots = append(p.slots, slot{})
		id = len(p.slots)
	}
	s := &p.slots[id-1]
	s.live = true
	s.obj = obj
	p.order = append(p.order, id)
	p.count++
	return Handle{ID: id, Gen: s.gen}
}

// Remove kills the object behind h. It reports whether h was alive.
func (p *Pool) Remove(h Handle) bool {
	s := p.lookup(h)
	if s == nil {
		return false
	}
	s.live = false
	s.gen++
	p.dead = append(p.dead, h.ID)
	p.count--
	return true
}

// Get returns the object behind h, or nil for a stale or invalid handle.
// The pointer is only good until the next Insert.
func (p *Pool) Get(h Handle) *Object {
	s := p.lookup(h)
	if s == nil {
		return nil
	}
	return &s.obj
}

func (p *Pool) lookup(h Handle) *slot {
	if h.ID <= 0 || h.ID > len(p.slots) {
		return nil
	}
	s := &p.slots[h.ID-1]
	if !s.live || s.gen != h.Gen {
		return nil
	}
	return s
}

// Len returns the live population.
func (p *Pool) Len() int {
	return p.count
}

// ForEach visits every live object oldest-first. Objects may be mutated
// through the pointer, but the pool itself must not change during the walk;
// passes that remove objects take a Handles snapshot first.
func (p *Pool) ForEach(fn func(Handle, *Object)) {
	p.purge()
	for _, id := range p.order {
		s := &p.slots[id-1]
		if !s.live {
			continue
		}
		fn(Handle{ID: id, Gen: s.gen}, &s.obj)
	}
}

// Handles returns the live handles oldest-first. Collision and cap passes
// walk this snapshot so mid-pass removals cannot upset the iteration.
func (p *Pool) Handles() []Handle {
	p.purge()
	out := make([]Handle, 0, p.count)
	for _, id := range p.order {
		s := &p.slots[id-1]
		if !s.live {
			continue
		}
		out = append(out, Handle{ID: id, Gen: s.gen})
	}
	return out
}

// Clear removes everything. Previously issued handles all go stale.
func (p *Pool) Clear() {
	for _, h := range p.Handles() {
		p.Remove(h)
	}
	p.purge()
}

// purge drops dead ids from the order list and releases them for reuse. An
// id must leave the order list before its slot can host a new object,
// otherwise the old entry would make a reused id show up twice.
func (p *Pool) purge() {
	if len(p.dead) == 0 {
		return
	}
	keep := p.order[:0]
	for _, id := range p.order {
		if p.slots[id-1].live {
			keep = append(keep, id)
		}
	}
	p.order = keep
	p.free = append(p.free, p.dead...)
	p.dead = p.dead[:0]
}

// EnforceCaps bounds the population. Above hard, the oldest objects go first
// until the hard cap holds again. Above soft (but at or under hard), only
// objects slower than slowSpeed are eligible, slowest first, and never so
// many that the population drops below soft. Fast objects are never evicted
// in the soft band, so the screen keeps its most lively shapes. Returns the
// number of removals.
func (p *Pool) EnforceCaps(soft, hard int, slowSpeed float64) int {
	removed := 0
	if hard > 0 && p.count > hard {
		for _, h := range p.Handles() {
			if p.count <= hard {
				break
			}
			p.Remove(h)
			removed++
		}
		return removed
	}
	if soft <= 0 || p.count <= soft {
		return removed
	}

	type candidate struct {
		h     Handle
		speed float64
	}
	var slow []candidate
	p.ForEach(func(h Handle, o *Object) {
		if s := o.Speed(); s < slowSpeed {
			slow = append(slow, candidate{h: h, speed: s})
		}
	})
	sort.SliceStable(slow, func(i, j int) bool {
		return slow[i].speed < slow[j].speed
	})

	n := p.count - soft
	if n > len(slow) {
		n = len(slow)
	}
	for i := 0; i < n; i++ {
		p.Remove(slow[i].h)
		removed++
	}
	return removed
}
