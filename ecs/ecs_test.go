package ecs

import "testing"

type health struct{ hp int }
type armor struct{ def int }

// TestPoolCreateUnique verifies Create never returns a duplicate live id.
func TestPoolCreateUnique(t *testing.T) {
	p := NewPool()
	seen := make(map[Entity]bool)
	for i := 0; i < 100; i++ {
		e := p.Create()
		if seen[e] {
			t.Fatalf("duplicate entity id %v at iteration %d", e, i)
		}
		seen[e] = true
		if !p.Alive(e) {
			t.Errorf("freshly created entity %v not alive", e)
		}
	}
	if p.Live() != 100 {
		t.Errorf("Live() = %d, want 100", p.Live())
	}
}

// TestPoolGenerationInvalidatesStaleID verifies slot reuse bumps the
// generation so old references stop matching.
func TestPoolGenerationInvalidatesStaleID(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Destroy(a)

	if p.Alive(a) {
		t.Fatal("destroyed entity still alive")
	}

	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("expected slot reuse: got index %d, want %d", b.Index(), a.Index())
	}
	if b.Generation() == a.Generation() {
		t.Fatal("reused slot kept the old generation")
	}
	if p.Alive(a) {
		t.Error("stale id alive after slot reuse")
	}
	if !p.Alive(b) {
		t.Error("recycled entity not alive")
	}
}

// TestPoolDestroyStaleIsNoop verifies double-destroy does not corrupt the pool.
func TestPoolDestroyStaleIsNoop(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Destroy(a)
	p.Destroy(a) // stale — must be ignored

	b := p.Create()
	c := p.Create()
	if b == c {
		t.Fatalf("double destroy produced duplicate ids: %v", b)
	}
	if !p.Alive(b) || !p.Alive(c) {
		t.Error("entities created after double destroy not alive")
	}
}

// TestNilEntityNeverAlive verifies the zero Entity is never reported live.
func TestNilEntityNeverAlive(t *testing.T) {
	p := NewPool()
	if p.Alive(NilEntity) {
		t.Fatal("NilEntity alive in empty pool")
	}
	p.Create()
	if p.Alive(NilEntity) {
		t.Fatal("NilEntity alive after first Create")
	}
}

// TestStoreSetGetRemove covers the basic store contract.
func TestStoreSetGetRemove(t *testing.T) {
	p := NewPool()
	s := NewStore[health]()
	e := p.Create()

	if _, ok := s.Get(e); ok {
		t.Fatal("Get on empty store returned a value")
	}

	s.Set(e, health{hp: 10})
	got, ok := s.Get(e)
	if !ok || got.hp != 10 {
		t.Fatalf("Get = (%v, %v), want ({10}, true)", got, ok)
	}

	// Overwrite must not grow the store.
	s.Set(e, health{hp: 3})
	if s.Len() != 1 {
		t.Errorf("Len after overwrite = %d, want 1", s.Len())
	}
	got, _ = s.Get(e)
	if got.hp != 3 {
		t.Errorf("overwrite lost: hp = %d, want 3", got.hp)
	}

	s.Remove(e)
	if s.Has(e) {
		t.Error("Has true after Remove")
	}
	s.Remove(e) // no-op
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

// TestStoreEachVisitsAll verifies Each sees every pair exactly once.
func TestStoreEachVisitsAll(t *testing.T) {
	p := NewPool()
	s := NewStore[health]()
	want := make(map[Entity]int)
	for i := 1; i <= 5; i++ {
		e := p.Create()
		s.Set(e, health{hp: i})
		want[e] = i
	}

	seen := make(map[Entity]int)
	s.Each(func(e Entity, v health) {
		if _, dup := seen[e]; dup {
			t.Errorf("entity %v visited twice", e)
		}
		seen[e] = v.hp
	})
	if len(seen) != len(want) {
		t.Fatalf("visited %d entities, want %d", len(seen), len(want))
	}
	for e, hp := range want {
		if seen[e] != hp {
			t.Errorf("entity %v: hp = %d, want %d", e, seen[e], hp)
		}
	}
}

// TestRegistryRemoveAll verifies destroy-time cleanup across stores.
func TestRegistryRemoveAll(t *testing.T) {
	p := NewPool()
	hs := NewStore[health]()
	as := NewStore[armor]()
	r := NewRegistry()
	r.Register(hs)
	r.Register(as)

	e := p.Create()
	hs.Set(e, health{hp: 1})
	as.Set(e, armor{def: 2})

	r.RemoveAll(e)
	p.Destroy(e)

	if hs.Has(e) || as.Has(e) {
		t.Error("component survived RemoveAll")
	}
}

// TestJoin verifies the two-kind join query.
func TestJoin(t *testing.T) {
	p := NewPool()
	hs := NewStore[health]()
	as := NewStore[armor]()

	both := p.Create()
	onlyH := p.Create()
	onlyA := p.Create()
	hs.Set(both, health{})
	hs.Set(onlyH, health{})
	as.Set(both, armor{})
	as.Set(onlyA, armor{})

	got := Join(hs, as)
	if len(got) != 1 || got[0] != both {
		t.Fatalf("Join = %v, want [%v]", got, both)
	}

	if n := len(With(hs)); n != 2 {
		t.Errorf("With(health) returned %d entities, want 2", n)
	}
}
