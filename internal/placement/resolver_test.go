package placement

import "testing"

// Three stacked candidates, one unit tall each: a=[0,1), b=[1,2), c=[2,3).
func boxes() []Box {
	return []Box{
		{ID: "a", Start: 0, End: 1},
		{ID: "b", Start: 1, End: 2},
		{ID: "c", Start: 2, End: 3},
	}
}

func TestResolveAnchor_EmptyAppends(t *testing.T) {
	got := ResolveAnchor("sec-1", 0.5, nil, "dragged")
	if !got.AtEnd || got.ContainerID != "sec-1" {
		t.Fatalf("got %+v, want end of sec-1", got)
	}
}

func TestResolveAnchor_PastTrailingEdgeAppends(t *testing.T) {
	got := ResolveAnchor("sec-1", 3.5, boxes(), "")
	if !got.AtEnd {
		t.Fatalf("got %+v, want end", got)
	}
}

func TestResolveAnchor_BeforeNearestMidpoint(t *testing.T) {
	// 0.2 is above a's midpoint (0.5): insert before a.
	got := ResolveAnchor("sec-1", 0.2, boxes(), "")
	if got.BeforeID != "a" || got.AtEnd {
		t.Fatalf("got %+v, want before a", got)
	}
}

func TestResolveAnchor_AfterWinnerMeansBeforeSuccessor(t *testing.T) {
	// 0.8 is below a's midpoint but nearer to it than to b's (1.5).
	got := ResolveAnchor("sec-1", 0.8, boxes(), "")
	if got.BeforeID != "b" {
		t.Fatalf("got %+v, want before b", got)
	}
}

func TestResolveAnchor_ExactMidpointResolvesAfter(t *testing.T) {
	// Exactly on b's midpoint: strict less-than rule picks the "after" side.
	got := ResolveAnchor("sec-1", 1.5, boxes(), "")
	if got.BeforeID != "c" {
		t.Fatalf("got %+v, want before c (after b)", got)
	}
}

func TestResolveAnchor_AfterLastAppends(t *testing.T) {
	// 2.6 is past c's midpoint but not past its end: after c = append.
	got := ResolveAnchor("sec-1", 2.6, boxes(), "")
	if !got.AtEnd {
		t.Fatalf("got %+v, want end", got)
	}
}

func TestResolveAnchor_TieBreaksEarliest(t *testing.T) {
	// Two candidates sharing a midpoint: the first scanned wins.
	same := []Box{
		{ID: "a", Start: 0, End: 2},
		{ID: "b", Start: 0, End: 2},
	}
	got := ResolveAnchor("sec-1", 0.5, same, "")
	if got.BeforeID != "a" {
		t.Fatalf("got %+v, want before a (earliest wins ties)", got)
	}
}

func TestResolveAnchor_ExcludesDragged(t *testing.T) {
	got := ResolveAnchor("sec-1", 0.2, boxes(), "a")
	if got.BeforeID != "b" {
		t.Fatalf("got %+v, want before b (a excluded)", got)
	}
}

func TestResolveAnchor_OnlyDraggedAppends(t *testing.T) {
	only := []Box{{ID: "a", Start: 0, End: 1}}
	got := ResolveAnchor("sec-1", 0.5, only, "a")
	if !got.AtEnd {
		t.Fatalf("got %+v, want end", got)
	}
}

func TestResolveAnchor_Deterministic(t *testing.T) {
	first := ResolveAnchor("sec-1", 1.31, boxes(), "b")
	for i := 0; i < 50; i++ {
		if got := ResolveAnchor("sec-1", 1.31, boxes(), "b"); !got.Equal(first) {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
}

func TestResolveContainer_NearestMidpoint(t *testing.T) {
	containers := []Box{
		{ID: "col:0", Start: 0, End: 4},
		{ID: "col:1", Start: 4, End: 6},
	}
	if id, ok := ResolveContainer(1.0, containers); !ok || id != "col:0" {
		t.Fatalf("got %q", id)
	}
	if id, ok := ResolveContainer(4.9, containers); !ok || id != "col:1" {
		t.Fatalf("got %q", id)
	}
}

func TestResolve_ComposesContainerAndAnchor(t *testing.T) {
	containers := []Box{
		{ID: "sec-a", Start: 0, End: 3},
		{ID: "sec-b", Start: 3, End: 6},
	}
	byContainer := map[string][]Box{
		"sec-a": {{ID: "i1", Start: 1, End: 2}, {ID: "i2", Start: 2, End: 3}},
		"sec-b": {{ID: "i3", Start: 4, End: 5}},
	}
	slot, ok := Resolve(4.5, 4.2, containers, byContainer, "i1")
	if !ok {
		t.Fatalf("no container resolved")
	}
	if slot.ContainerID != "sec-b" || slot.BeforeID != "i3" {
		t.Fatalf("got %+v, want before i3 in sec-b", slot)
	}
}

func TestResolve_NoContainers(t *testing.T) {
	if _, ok := Resolve(0, 0, nil, nil, ""); ok {
		t.Fatalf("expected ok=false with no containers")
	}
}
