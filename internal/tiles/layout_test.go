package tiles

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/map-tiler/internal/detection"
)

func TestBuildLayout(t *testing.T) {
	tiles := []Tile{
		{
			Region:   detection.Region{ID: 1, Centroid: image.Pt(256, 91)},
			FileName: "hex_01.png",
			Crop:     image.Rect(155, 0, 357, 192),
		},
		{
			Region:   detection.Region{ID: 2, Centroid: image.Pt(512, 91)},
			FileName: "hex_02.png",
			Crop:     image.Rect(411, 0, 613, 192),
		},
	}

	got := BuildLayout(tiles, "/maps/hexes")

	want := []LayoutRecord{
		{ID: "region_01", Image: "/maps/hexes/hex_01.png", X: 256, Y: 91, Width: 202, Height: 192},
		{ID: "region_02", Image: "/maps/hexes/hex_02.png", X: 512, Y: 91, Width: 202, Height: 192},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildLayout() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLayout_ImageBase(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"site path", "/maps/hexes", "/maps/hexes/hex_07.png"},
		{"trailing slash", "/maps/hexes/", "/maps/hexes/hex_07.png"},
		{"absolute url", "https://cdn.example.com/maps/hexes", "https://cdn.example.com/maps/hexes/hex_07.png"},
		{"absolute url with trailing slash", "https://cdn.example.com/maps/", "https://cdn.example.com/maps/hex_07.png"},
		{"root", "/", "/hex_07.png"},
		{"relative", "hexes", "hexes/hex_07.png"},
		{"empty", "", "hex_07.png"},
	}

	tiles := []Tile{{Region: detection.Region{ID: 7}, FileName: "hex_07.png"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildLayout(tiles, tt.base)
			if got[0].Image != tt.want {
				t.Errorf("Image = %q, want %q", got[0].Image, tt.want)
			}
		})
	}
}

func TestWriteLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src", "data", "map_layout.json")
	records := []LayoutRecord{
		{ID: "region_01", Image: "/maps/hexes/hex_01.png", X: 120, Y: 80, Width: 150, Height: 160},
		{ID: "region_02", Image: "/maps/hexes/hex_02.png", X: 300, Y: 80, Width: 148, Height: 161},
	}

	if err := WriteLayout(path, records); err != nil {
		t.Fatalf("WriteLayout failed: %v", err)
	}

	got, err := readLayout(path)
	if err != nil {
		t.Fatalf("readLayout failed: %v", err)
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read layout: %v", err)
	}
	if !strings.Contains(string(data), "\n  {\n    \"id\": \"region_01\",") {
		t.Errorf("layout is not indented with two spaces:\n%s", data)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("layout is not a JSON array: %v", err)
	}
	wantKeys := []string{"height", "id", "image", "width", "x", "y"}
	for _, k := range wantKeys {
		if _, ok := raw[0][k]; !ok {
			t.Errorf("record is missing key %q", k)
		}
	}
	if len(raw[0]) != len(wantKeys) {
		t.Errorf("record has %d keys, want %d", len(raw[0]), len(wantKeys))
	}

	// No temporary files are left next to the layout
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("failed to list layout directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("layout directory has %d entries, want 1", len(entries))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o044 != 0o044 {
		t.Errorf("layout permissions = %v, want group and world readable", perm)
	}
}

func TestWriteLayout_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayout(path, nil); err != nil {
		t.Fatalf("WriteLayout failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read layout: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty layout = %q, want []", data)
	}
}

func TestWriteLayout_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	first := []LayoutRecord{{ID: "region_01"}, {ID: "region_02"}}
	second := []LayoutRecord{{ID: "region_01"}}

	if err := WriteLayout(path, first); err != nil {
		t.Fatalf("first WriteLayout failed: %v", err)
	}
	if err := WriteLayout(path, second); err != nil {
		t.Fatalf("second WriteLayout failed: %v", err)
	}

	got, err := readLayout(path)
	if err != nil {
		t.Fatalf("readLayout failed: %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

// readLayout decodes a layout document from disk.
func readLayout(path string) ([]LayoutRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []LayoutRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
