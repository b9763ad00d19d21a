package state

import (
	"testing"
)

func TestCell_GetSet(t *testing.T) {
	c := NewCell(1)

	if got := c.Get(); got != 1 {
		t.Errorf("Get() = %d, want 1", got)
	}

	c.Set(42)
	if got := c.Get(); got != 42 {
		t.Errorf("Get() after Set = %d, want 42", got)
	}
}

func TestCell_Update(t *testing.T) {
	c := NewCell(10)

	got := c.Update(func(v int) int { return v + 5 })
	if got != 15 {
		t.Errorf("Update() = %d, want 15", got)
	}
	if c.Get() != 15 {
		t.Errorf("Get() after Update = %d, want 15", c.Get())
	}
}

func TestCell_Subscribe(t *testing.T) {
	t.Run("observes every publish", func(t *testing.T) {
		c := NewCell(0)

		var seen []int
		c.Subscribe(func(v int) { seen = append(seen, v) })

		c.Set(1)
		c.Set(2)
		c.Update(func(v int) int { return v + 1 })

		want := []int{1, 2, 3}
		if len(seen) != len(want) {
			t.Fatalf("len(seen) = %d, want %d", len(seen), len(want))
		}
		for i := range want {
			if seen[i] != want[i] {
				t.Errorf("seen[%d] = %d, want %d", i, seen[i], want[i])
			}
		}
	})

	t.Run("cancel stops delivery", func(t *testing.T) {
		c := NewCell(0)

		calls := 0
		cancel := c.Subscribe(func(int) { calls++ })

		c.Set(1)
		cancel()
		c.Set(2)

		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("notification order follows subscription order", func(t *testing.T) {
		c := NewCell(0)

		var order []string
		c.Subscribe(func(int) { order = append(order, "first") })
		c.Subscribe(func(int) { order = append(order, "second") })

		c.Set(1)

		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("order = %v, want [first second]", order)
		}
	})
}

func TestCell_SliceValues(t *testing.T) {
	c := NewCell[[]string](nil)

	var lastSeen []string
	c.Subscribe(func(v []string) { lastSeen = v })

	c.Set([]string{"a", "b"})
	if len(lastSeen) != 2 {
		t.Fatalf("len(lastSeen) = %d, want 2", len(lastSeen))
	}

	c.Set(nil)
	if lastSeen != nil {
		t.Errorf("lastSeen = %v, want nil", lastSeen)
	}
}
