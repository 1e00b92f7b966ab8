package ecs

// With returns a snapshot of the entities holding component kind A.
func With[A any](a *Store[A]) []Entity {
	return a.Entities()
}

// Join returns a snapshot of the entities holding both component kinds A and
// B. The smaller store is scanned; results are consistent as of call time.
func Join[A, B any](a *Store[A], b *Store[B]) []Entity {
	if b.Len() < a.Len() {
		out := make([]Entity, 0, b.Len())
		b.Each(func(e Entity, _ B) {
			if a.Has(e) {
				out = append(out, e)
			}
		})
		return out
	}
	out := make([]Entity, 0, a.Len())
	a.Each(func(e Entity, _ A) {
		if b.Has(e) {
			out = append(out, e)
		}
	})
	return out
}
