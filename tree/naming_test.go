package tree

import "testing"

func TestOriginName(t *testing.T) {
	tests := []struct {
		name     string
		fullPath string
		sep      string
		want     string
	}{
		{name: "trailing separator", fullPath: "/a/b/c/", sep: "/", want: "c"},
		{name: "no trailing separator", fullPath: "/a/b/c", sep: "/", want: "c"},
		{name: "bare file", fullPath: "readme.txt", sep: "/", want: "readme.txt"},
		{name: "bare directory", fullPath: "folder1/", sep: "/", want: "folder1"},
		{name: "rar separator", fullPath: `docs\2024\plan.doc`, sep: `\`, want: "plan.doc"},
		{name: "rar directory", fullPath: `docs\2024\`, sep: `\`, want: "2024"},
		{name: "forward slash is not a rar separator", fullPath: `a/b`, sep: `\`, want: "a/b"},
		{name: "only one separator stripped", fullPath: "a//", sep: "/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OriginName(tt.fullPath, tt.sep); got != tt.want {
				t.Errorf("OriginName(%q, %q) = %q, want %q", tt.fullPath, tt.sep, got, tt.want)
			}
		})
	}
}

func TestOriginName_Idempotent(t *testing.T) {
	withSep := OriginName("/a/b/c/", "/")
	without := OriginName("/a/b/c", "/")
	if withSep != without || withSep != "c" {
		t.Errorf("OriginName not idempotent under trailing separator: %q vs %q", withSep, without)
	}
}

func TestParentKey(t *testing.T) {
	tests := []struct {
		name     string
		fullPath string
		sep      string
		want     string
	}{
		{name: "nested file", fullPath: "a/b/c.txt", sep: "/", want: "b"},
		{name: "top level file", fullPath: "c.txt", sep: "/", want: "root"},
		{name: "nested directory", fullPath: "a/b/", sep: "/", want: "a"},
		{name: "top level directory", fullPath: "a/", sep: "/", want: "root"},
		{name: "single character parent", fullPath: "a/c.txt", sep: "/", want: "a"},
		{name: "leading separator", fullPath: "/c.txt", sep: "/", want: "root"},
		{name: "rar nested", fullPath: `x\y\z.txt`, sep: `\`, want: "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParentKey(tt.fullPath, tt.sep, "root"); got != tt.want {
				t.Errorf("ParentKey(%q) = %q, want %q", tt.fullPath, got, tt.want)
			}
		})
	}
}

func TestZipNaming(t *testing.T) {
	z := ZipNaming{Archive: "demo.zip"}
	tests := []struct {
		fullPath string
		isDir    bool
		want     Names
	}{
		{"folder1/", true, Names{Origin: "folder1", Key: "1_folder1", Parent: "0_demo.zip"}},
		{"folder1/report.xlsx", false, Names{Origin: "report.xlsx", Key: "demo.zip_report.xlsx", Parent: "1_folder1", ParentPath: "folder1"}},
		{"readme.txt", false, Names{Origin: "readme.txt", Key: "demo.zip_readme.txt", Parent: "0_demo.zip"}},
		{"a/b/c/", true, Names{Origin: "c", Key: "3_c", Parent: "2_b", ParentPath: "a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.fullPath, func(t *testing.T) {
			if got := z.Names(tt.fullPath, tt.isDir); got != tt.want {
				t.Errorf("Names(%q) = %+v, want %+v", tt.fullPath, got, tt.want)
			}
		})
	}
}

func TestRarNaming(t *testing.T) {
	r := RarNaming{Archive: "demo.rar"}
	tests := []struct {
		fullPath string
		isDir    bool
		want     Names
	}{
		{`folder1`, true, Names{Origin: "folder1", Key: "folder1", Parent: "demo.rar"}},
		{`folder1\report.xlsx`, false, Names{Origin: "report.xlsx", Key: "demo.rar_report.xlsx", Parent: "folder1", ParentPath: "folder1"}},
		{`a\b\c`, true, Names{Origin: "c", Key: "c", Parent: "b", ParentPath: `a\b`}},
		{`readme.txt`, false, Names{Origin: "readme.txt", Key: "demo.rar_readme.txt", Parent: "demo.rar"}},
	}

	for _, tt := range tests {
		t.Run(tt.fullPath, func(t *testing.T) {
			if got := r.Names(tt.fullPath, tt.isDir); got != tt.want {
				t.Errorf("Names(%q) = %+v, want %+v", tt.fullPath, got, tt.want)
			}
		})
	}
}

func TestSegmentCount(t *testing.T) {
	tests := map[string]int{
		"a":        1,
		"a/":       1,
		"a/b":      2,
		"a/b/":     2,
		"/a":       2,
		"a//b":     3,
		"":         1,
		"a/b/c.go": 3,
	}
	for path, want := range tests {
		if got := segmentCount(path, "/"); got != want {
			t.Errorf("segmentCount(%q) = %d, want %d", path, got, want)
		}
	}
}
