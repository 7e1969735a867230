package doctree

import "testing"

func TestTree_LevelGapAttachesToNearestLowerLevel(t *testing.T) {
	tree := New()
	for i, level := range []int{2, 3, 3, 2, 4} {
		tree.Add(level, "h", string(rune('a'+i)))
	}

	top := tree.Children(Root)
	if len(top) != 2 {
		t.Fatalf("expected 2 top-level headings, got %d", len(top))
	}

	first := tree.Node(top[0])
	if len(first.Children) != 2 {
		t.Fatalf("expected first heading to have 2 children, got %d", len(first.Children))
	}
	for _, c := range first.Children {
		if tree.Node(c).Level != 3 {
			t.Errorf("expected level 3 child, got %d", tree.Node(c).Level)
		}
	}

	second := tree.Node(top[1])
	if len(second.Children) != 1 {
		t.Fatalf("expected second heading to have 1 child, got %d", len(second.Children))
	}
	child := tree.Node(second.Children[0])
	if child.Level != 4 || child.Parent != top[1] {
		t.Errorf("expected level 4 child directly under second heading, got level %d parent %d", child.Level, child.Parent)
	}
}

func TestTree_DeepFirstHeadingUsesRoot(t *testing.T) {
	tree := New()
	tree.Add(5, "deep", "deep")
	tree.Add(3, "mid", "mid")

	top := tree.Children(Root)
	if len(top) != 2 {
		t.Fatalf("expected both headings at top level, got %d", len(top))
	}
}

func TestTree_ShallowerHeadingWalksUp(t *testing.T) {
	tree := New()
	a := tree.Add(2, "a", "a")
	tree.Add(4, "b", "b")
	c := tree.Add(3, "c", "c")

	if tree.Node(c).Parent != a {
		t.Errorf("expected h3 to attach under h2, got parent %d", tree.Node(c).Parent)
	}
	if tree.Len() != 3 {
		t.Errorf("expected 3 headings, got %d", tree.Len())
	}
}

func TestTree_NamesRegistered(t *testing.T) {
	tree := New()
	if tree.Taken("intro") {
		t.Fatal("fresh tree should have no names")
	}
	tree.Add(2, "Intro", "intro")
	if !tree.Taken("intro") {
		t.Error("expected intro to be taken after Add")
	}
	tree.Reserve("other")
	if !tree.Taken("other") {
		t.Error("expected reserved name to be taken")
	}
}

func TestTree_WalkDocumentOrder(t *testing.T) {
	tree := New()
	tree.Add(2, "", "a")
	tree.Add(3, "", "b")
	tree.Add(2, "", "c")

	var got []string
	var depths []int
	tree.Walk(func(idx, depth int) {
		got = append(got, tree.Node(idx).Name)
		depths = append(depths, depth)
	})

	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("walk order: expected %v, got %v", want, got)
		}
	}
	if depths[1] != 1 || depths[2] != 0 {
		t.Errorf("unexpected depths %v", depths)
	}
}
