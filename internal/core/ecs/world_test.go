package ecs

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type tag string

func (t tag) ComponentType() string { return "Tag" }

type hp struct{ cur int }

func (*hp) ComponentType() string { return "HP" }

type pos struct{ x, y int }

func (*pos) ComponentType() string { return "Pos" }

type sink struct{ msgs []string }

func (s *sink) Add(m string) { s.msgs = append(s.msgs, m) }

func TestIdsMonotonicAndNeverReused(t *testing.T) {
	w := NewWorld(nil, nil)
	var last Entity
	live := map[Entity]bool{}
	for i := 0; i < 20; i++ {
		e := w.AddEntity()
		if e <= last {
			t.Fatalf("id %d not greater than previous %d", e, last)
		}
		last = e
		live[e] = true
		if i%3 == 0 {
			w.DeleteEntity(e)
			delete(live, e)
		}
	}
	got := w.Entities()
	if len(got) != len(live) {
		t.Fatalf("Entities() = %d entities, want %d", len(got), len(live))
	}
	for i, e := range got {
		if !live[e] {
			t.Errorf("deleted entity %d returned", e)
		}
		if i > 0 && got[i-1] >= e {
			t.Errorf("Entities() not ascending: %v", got)
		}
	}
	if e := w.AddEntity(); e != last+1 {
		t.Errorf("next id = %d, want %d", e, last+1)
	}
}

func TestAddEntityDuplicateTypesLastWins(t *testing.T) {
	w := NewWorld(nil, nil)
	e := w.AddEntity(tag("first"), &hp{3}, tag("second"))
	c, ok := w.Component(e, "Tag")
	if !ok || c.(tag) != "second" {
		t.Fatalf("Tag = %v, %v; want second", c, ok)
	}
}

func TestAddComponentsReplaces(t *testing.T) {
	w := NewWorld(nil, nil)
	e := w.AddEntity(&hp{10})
	w.AddComponents(e, &hp{4})
	c, _ := w.Component(e, "HP")
	if c.(*hp).cur != 4 {
		t.Errorf("HP = %d, want 4", c.(*hp).cur)
	}
	w.AddComponents(e, &hp{7})
	v, ok := Get[*hp](w, e)
	if !ok || v.cur != 7 {
		t.Errorf("Get[*hp] = %v, %v; want 7", v, ok)
	}
}

func TestAddComponentsMissingEntityWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := &sink{}
	w := NewWorld(zap.New(core), s)

	e := w.AddEntity()
	w.DeleteEntity(e)
	w.AddComponents(e, &hp{1})

	if w.Alive(e) {
		t.Fatal("deleted entity resurrected")
	}
	if logs.Len() != 1 {
		t.Fatalf("warn logs = %d, want 1", logs.Len())
	}
	if len(s.msgs) != 1 || s.msgs[0] != "cannot add components - entity 1 does not exist" {
		t.Errorf("sink = %v", s.msgs)
	}
}

func TestComponentAbsentIsNotAnError(t *testing.T) {
	w := NewWorld(nil, nil)
	e := w.AddEntity(&hp{1})
	if _, ok := w.Component(e, "Pos"); ok {
		t.Error("missing type reported present")
	}
	if _, ok := w.Component(99, "HP"); ok {
		t.Error("missing entity reported present")
	}
	got := w.Components(e, "Pos", "HP", "Tag")
	if len(got) != 3 || got[0] != nil || got[1] == nil || got[2] != nil {
		t.Errorf("Components = %v", got)
	}
}

func TestQueryIsSubsetAndFullyPopulated(t *testing.T) {
	w := NewWorld(nil, nil)
	a := w.AddEntity(&hp{1}, &pos{1, 1})
	w.AddEntity(&hp{2})
	c := w.AddEntity(&pos{3, 3}, &hp{3}, tag("x"))
	w.AddEntity(&pos{4, 4})

	types := []string{"Pos", "HP"}
	rows := w.Query(types...)
	want := w.Entities(types...)
	if !reflect.DeepEqual(want, []Entity{a, c}) {
		t.Fatalf("Entities = %v", want)
	}
	if len(rows) != len(want) {
		t.Fatalf("Query rows = %d, want %d", len(rows), len(want))
	}
	for i, r := range rows {
		if r.Entity != want[i] {
			t.Errorf("row %d entity = %d, want %d", i, r.Entity, want[i])
		}
		if len(r.Components) != len(types) {
			t.Fatalf("row %d has %d components", i, len(r.Components))
		}
		for j, cmp := range r.Components {
			if cmp == nil || cmp.ComponentType() != types[j] {
				t.Errorf("row %d slot %d = %v", i, j, cmp)
			}
		}
	}
}

func TestRemoveAndClearComponent(t *testing.T) {
	w := NewWorld(nil, nil)
	a := w.AddEntity(&hp{1}, tag("a"))
	b := w.AddEntity(&hp{2})
	c := w.AddEntity(tag("c"))

	w.RemoveComponent(a, "Tag")
	w.RemoveComponent(a, "Tag")
	w.RemoveComponent(42, "Tag")
	if _, ok := w.Component(a, "Tag"); ok {
		t.Error("Tag not removed from a")
	}

	w.ClearComponent("HP")
	if got := w.Entities("HP"); len(got) != 0 {
		t.Errorf("HP still on %v", got)
	}
	if _, ok := w.Component(c, "Tag"); !ok {
		t.Error("ClearComponent touched an unrelated component")
	}
	if !w.Alive(a) || !w.Alive(b) {
		t.Error("ClearComponent deleted entities")
	}
}

func TestDeleteEntityLeavesResources(t *testing.T) {
	w := NewWorld(nil, nil)
	e := w.AddEntity(&hp{1})
	w.Save("player", e)
	w.DeleteEntity(e)
	w.DeleteEntity(e)

	if got := w.Components(e, "HP"); got[0] != nil {
		t.Error("component survived delete")
	}
	v, err := w.Fetch("player")
	if err != nil || v.(Entity) != e {
		t.Errorf("Fetch = %v, %v", v, err)
	}
}

func TestFetchMissingResource(t *testing.T) {
	w := NewWorld(nil, nil)
	if _, err := w.Fetch("turn"); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
	w.Save("turn", 1)
	w.Save("turn", 2)
	v, err := w.Fetch("turn")
	if err != nil || v.(int) != 2 {
		t.Errorf("Fetch = %v, %v", v, err)
	}
}

func TestEach2(t *testing.T) {
	w := NewWorld(nil, nil)
	w.AddEntity(&hp{5}, &pos{1, 2})
	w.AddEntity(&hp{6})
	var seen []int
	Each2(w, func(_ Entity, h *hp, p *pos) {
		seen = append(seen, h.cur+p.x)
	})
	if !reflect.DeepEqual(seen, []int{6}) {
		t.Errorf("Each2 visited %v", seen)
	}
}
