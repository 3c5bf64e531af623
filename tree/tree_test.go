package tree

import "testing"

func TestWalk_ParentsBeforeChildren(t *testing.T) {
	tr := build(ZipNaming{Archive: "demo.zip"}, []entry{
		{"a/b/c.txt", false},
		{"a/d.txt", false},
		{"e.txt", false},
	})

	seen := make(map[string]bool)
	var order []string
	for _, n := range tr.Walk {
		if n.ParentKey != "" && !seen[n.ParentKey] {
			if _, ok := tr.Lookup(n.ParentKey); ok {
				t.Errorf("%s visited before its parent %s", n.Key, n.ParentKey)
			}
		}
		seen[n.Key] = true
		order = append(order, n.Key)
	}
	want := []string{"0_demo.zip", "1_a", "2_b", "demo.zip_c.txt", "demo.zip_d.txt", "demo.zip_e.txt"}
	if len(order) != len(want) {
		t.Fatalf("walk order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("walk order = %v, want %v", order, want)
		}
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	tr := build(ZipNaming{Archive: "demo.zip"}, []entry{
		{"a.txt", false},
		{"b.txt", false},
		{"c.txt", false},
	})
	visited := 0
	for range tr.Walk {
		visited++
		if visited == 2 {
			break
		}
	}
	if visited != 2 {
		t.Errorf("visited %d nodes after break, want 2", visited)
	}
}

func TestPlaceholder(t *testing.T) {
	tr := build(RarNaming{Archive: "demo.rar"}, []entry{
		{`docs\a.txt`, false},
		{`pics`, true},
	})
	docs, ok := tr.Lookup("docs")
	if !ok || !tr.Node(docs).Placeholder() {
		t.Error("docs should be a placeholder directory")
	}
	pics, ok := tr.Lookup("pics")
	if !ok || tr.Node(pics).Placeholder() {
		t.Error("pics is an explicit directory")
	}
	if _, ok := tr.Lookup("missing"); ok {
		t.Error("Lookup should miss unknown keys")
	}
}
