package ecs

import "testing"

func TestEntityAddGetRemove(t *testing.T) {
	e := NewEntity("e")
	p := &point{1, 2}
	e.Add(p)

	got, ok := Get[*point](e)
	if !ok || got != p {
		t.Fatalf("Get returned %v, %v", got, ok)
	}
	if !Has[*point](e) || e.Has(NameOf[*matrix]()) {
		t.Fatal("Has reports wrong membership")
	}
	if removed := e.Remove(NameOf[*point]()); removed != p {
		t.Fatalf("Remove returned %v", removed)
	}
	if e.Len() != 0 {
		t.Fatalf("expected empty entity, got %d components", e.Len())
	}
	if removed := e.Remove(NameOf[*point]()); removed != nil {
		t.Fatalf("second Remove returned %v", removed)
	}
}

func TestEntityAddSameInstanceIsNoop(t *testing.T) {
	e := NewEntity("e")
	fired := 0
	e.ComponentAdded().AddFunc(func(*Entity) { fired++ })
	p := &point{}
	e.Add(p)
	e.Add(p)
	if fired != 1 {
		t.Fatalf("expected 1 ComponentAdded, got %d", fired)
	}
}

func TestEntityAddReplacesSameName(t *testing.T) {
	e := NewEntity("e")
	fired := 0
	e.ComponentAdded().AddFunc(func(*Entity) { fired++ })
	first, second := &point{1, 1}, &point{2, 2}
	e.Add(first).Add(second)
	if got, _ := Get[*point](e); got != second {
		t.Fatal("second instance should replace the first")
	}
	if fired != 2 || e.Len() != 1 {
		t.Fatalf("fired=%d len=%d", fired, e.Len())
	}
}

func TestEntityRemoveAllFiresPerComponent(t *testing.T) {
	e := NewEntity("e")
	e.Add(&point{}).Add(&matrix{}).Add(&tag{})
	removed := map[ComponentName]bool{}
	e.ComponentRemoved().AddFunc(func(_ *Entity, name ComponentName) { removed[name] = true })
	e.RemoveAll()
	if len(removed) != 3 || e.Len() != 0 {
		t.Fatalf("removed=%v len=%d", removed, e.Len())
	}
}

func TestEntitySetName(t *testing.T) {
	e := NewEntity("before")
	var prev []string
	e.NameChanged().AddFunc(func(_ *Entity, p string) { prev = append(prev, p) })
	e.SetName("before")
	e.SetName("after")
	if e.Name() != "after" || len(prev) != 1 || prev[0] != "before" {
		t.Fatalf("name=%q prev=%v", e.Name(), prev)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("empty name should panic")
		}
	}()
	e.SetName("")
}

func TestRemoveComponentGeneric(t *testing.T) {
	e := NewEntity("e")
	m := &matrix{A: 1}
	e.Add(m)
	got, ok := RemoveComponent[*matrix](e)
	if !ok || got != m || e.Has(NameOf[*matrix]()) {
		t.Fatalf("RemoveComponent returned %v, %v", got, ok)
	}
	if _, ok := RemoveComponent[*matrix](e); ok {
		t.Fatal("second RemoveComponent should report false")
	}
}
