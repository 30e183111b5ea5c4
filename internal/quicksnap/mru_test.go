package quicksnap

import (
	"testing"

	"github.com/1broseidon/zonesnap/internal/platform"
)

func TestSortByFocusMostRecentFirst(t *testing.T) {
	var mru MRU
	mru.Touch(2)
	mru.Touch(3) // most recent

	items := []Item{{ID: 1}, {ID: 2}, {ID: 3}}
	mru.SortByFocus(items)

	want := []platform.WindowID{3, 2, 1}
	for i, w := range want {
		if items[i].ID != w {
			t.Fatalf("items[%d] = %d, want %d", i, items[i].ID, w)
		}
	}
}

func TestSortByFocusTiesKeepEnumerationOrder(t *testing.T) {
	var mru MRU
	mru.Touch(5)

	items := []Item{{ID: 1}, {ID: 2}, {ID: 5}, {ID: 3}}
	mru.SortByFocus(items)

	if items[0].ID != 5 {
		t.Fatalf("items[0] = %d, want 5", items[0].ID)
	}
	// 1, 2, 3 were never focused; they keep their original relative order.
	if items[1].ID != 1 || items[2].ID != 2 || items[3].ID != 3 {
		t.Fatalf("tie order = %d, %d, %d; want 1, 2, 3", items[1].ID, items[2].ID, items[3].ID)
	}
}

func TestTouchMovesToFront(t *testing.T) {
	var mru MRU
	mru.Touch(1)
	mru.Touch(2)
	mru.Touch(1) // re-focus

	items := []Item{{ID: 1}, {ID: 2}}
	mru.SortByFocus(items)
	if items[0].ID != 1 {
		t.Fatalf("items[0] = %d, want re-focused 1", items[0].ID)
	}
}

func TestForget(t *testing.T) {
	var mru MRU
	mru.Touch(1)
	mru.Touch(2)
	mru.Forget(2)

	items := []Item{{ID: 1}, {ID: 2}}
	mru.SortByFocus(items)
	if items[0].ID != 1 {
		t.Fatalf("items[0] = %d, want 1 (forgotten window falls behind)", items[0].ID)
	}
}

func TestTouchZeroIsIgnored(t *testing.T) {
	var mru MRU
	mru.Touch(0)
	if got := mru.rank(0); got != 0 && len(mru.order) != 0 {
		t.Fatal("zero window id must not be recorded")
	}
	if len(mru.order) != 0 {
		t.Fatalf("order length = %d, want 0", len(mru.order))
	}
}
