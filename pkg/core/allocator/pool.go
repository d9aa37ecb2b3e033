package allocator

import "slices"

// RotationPool is a fixed, name-sorted cycle of candidates with a cursor.
// Only the cursor moves after construction, so every member is offered once
// before any member is offered again.
type RotationPool struct {
	names  []string
	cursor int
}

// NewRotationPool builds a pool from the given names, sorted and de-duplicated
func NewRotationPool(names []string) *RotationPool {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return &RotationPool{names: sorted}
}

// Len returns the number of members in the pool
func (p *RotationPool) Len() int {
	return len(p.names)
}

// Members returns a copy of the members in base (alphabetical) order
func (p *RotationPool) Members() []string {
	return slices.Clone(p.names)
}

// Contains reports whether the name is a member of the pool
func (p *RotationPool) Contains(name string) bool {
	_, found := slices.BinarySearch(p.names, name)
	return found
}

// Take returns up to count names, reading from the cursor and advancing it one position per
// name read. Excluded names and names already taken in this call are skipped. The scan stops
// after twice the pool length so a pool smaller than the exclusions allow returns short.
func (p *RotationPool) Take(count int, exclude NameSet) []string {
	n := len(p.names)
	if n == 0 || count <= 0 {
		return nil
	}

	var picked []string
	for tried := 0; len(picked) < count && tried < 2*n; tried++ {
		name := p.names[p.cursor]
		p.cursor = (p.cursor + 1) % n

		if exclude[name] || slices.Contains(picked, name) {
			continue
		}
		picked = append(picked, name)
	}

	return picked
}
