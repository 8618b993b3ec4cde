package utils

import "testing"

func TestPageBounds(t *testing.T) {
	page, size, offset := PageBounds(0, 0)
	if page != 1 || size != DefaultPageSize || offset != 0 {
		t.Fatalf("PageBounds(0,0) = %d,%d,%d", page, size, offset)
	}
	page, size, offset = PageBounds(3, 20)
	if page != 3 || size != 20 || offset != 40 {
		t.Fatalf("PageBounds(3,20) = %d,%d,%d", page, size, offset)
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 2, 20, 42)
	if p.TotalPages != 3 || !p.HasPrev || !p.HasNext {
		t.Fatalf("unexpected page %+v", p)
	}

	last := NewPage[int](nil, 3, 20, 42)
	if last.HasNext || last.Items == nil {
		t.Fatalf("unexpected last page %+v", last)
	}

	empty := NewPage[int](nil, 1, 20, 0)
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Fatalf("unexpected empty page %+v", empty)
	}
}
