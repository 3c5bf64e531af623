package util

import "testing"

func TestBaseName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "unix absolute", path: "/data/uploads/demo.zip", want: "demo.zip"},
		{name: "windows absolute", path: `C:\uploads\demo.rar`, want: "demo.rar"},
		{name: "mixed separators", path: `/data\uploads/demo.zip`, want: "demo.zip"},
		{name: "bare name", path: "demo.zip", want: "demo.zip"},
		{name: "trailing separator", path: "/data/uploads/", want: "uploads"},
		{name: "empty", path: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseName(tt.path); got != tt.want {
				t.Errorf("BaseName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
