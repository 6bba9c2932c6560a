package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	nt "vitrina/entity"
	"vitrina/view"
)

func ptr[T any](val T) *T {
	return &val
}

func garage() []Vehicle {
	return []Vehicle{
		{Id: "1", Brand: "Porsche", Model: "911 GT3 RS", Year: ptr(2023), EditionType: ptr("Weissach"), CurrentPrice: ptr(325000.0), Status: Available},
		{Id: "2", Brand: "Ferrari", Model: "F8 Tributo", Year: ptr(2021), CurrentPrice: ptr(280000.0), Status: Sold},
		{Id: "3", Brand: "McLaren", Model: "720S", Year: nil, Status: InStorage},
		{Id: "4", Brand: "Lamborghini", Model: "Huracán STO", Year: ptr(2022), EditionType: ptr("Limited"), CurrentPrice: ptr(0.0), Status: Prize},
	}
}

func vehicleIds(vcls []Vehicle) []string {
	out := []string{}
	for _, vcl := range vcls {
		out = append(out, vcl.Id)
	}
	return out
}

func TestVehicleView(t *testing.T) {

	tests := []struct {
		name string
		snap view.Snapshot
		want []string
	}{
		{
			name: "default sort is newest year first with unknown year last",
			snap: view.Snapshot{Sort: &DefaultVehicleSort},
			want: []string{"1", "4", "2", "3"},
		},
		{
			name: "search edition type",
			snap: view.Snapshot{Search: "limit"},
			want: []string{"4"},
		},
		{
			name: "search year",
			snap: view.Snapshot{Search: "2021"},
			want: []string{"2"},
		},
		{
			name: "status filter",
			snap: view.Snapshot{Selection: nt.Selection{"status": {"Sold", "In Storage"}}},
			want: []string{"2", "3"},
		},
		{
			name: "price ascending",
			snap: view.Snapshot{Sort: &nt.Sort{Field: "current_price", Dir: nt.Asc}},
			want: []string{"4", "2", "1", "3"},
		},
		{
			name: "model descending",
			snap: view.Snapshot{Sort: &nt.Sort{Field: "model", Dir: nt.Desc}},
			want: []string{"4", "2", "1", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vehicleIds(view.Compute(VehicleSchema, garage(), tt.snap))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {

	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "Available", want: Available},
		{in: "in storage", want: InStorage},
		{in: " PRIZE ", want: Prize},
		{in: "Scrapped", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {

	tests := []struct {
		in   *float64
		want string
	}{
		{in: nil, want: "—"},
		{in: ptr(0.0), want: "—"},
		{in: ptr(325000.0), want: "$325,000"},
		{in: ptr(1234567.6), want: "$1,234,568"},
		{in: ptr(950.0), want: "$950"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1.2M", want: 1200000},
		{in: "245K", want: 245000},
		{in: "3.2k", want: 3200},
		{in: "980", want: 980},
		{in: "lots", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCount(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseCount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

const postsYaml = `
- id: "1"
  title: Porsche 911 GT3 RS Review
  influencer: "@luxurycars_cl"
  platform: TikTok
  views: 1.2M
  trending: true
  featured: true
  tags: ["#porsche", "#gt3", "#review"]
- id: "2"
  title: Lamborghini Huracán STO
  influencer: "@supercars_daily"
  platform: TikTok
  views: 890K
  trending: true
  tags: ["#lamborghini", "#sto"]
- id: "3"
  title: Ferrari F8 Speed Test
  influencer: "@ferrari_world"
  platform: YouTube
  views: lots
  featured: true
  tags: ["#ferrari", "#f8"]
- id: "4"
  title: BMW M4 Track Day
  platform: YouTube
  views: 2.1M
  tags: ["#bmw", "#review"]
`

func loadPosts(t *testing.T) []Post {
	t.Helper()

	path := filepath.Join(t.TempDir(), "posts.yaml")
	if err := os.WriteFile(path, []byte(postsYaml), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	posts, err := LoadPosts(path)
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}
	return posts
}

func TestLoadPosts(t *testing.T) {

	posts := loadPosts(t)
	if len(posts) != 4 {
		t.Fatalf("LoadPosts() got %d posts, want 4", len(posts))
	}
	if posts[0].Platform != TikTok || !posts[0].Featured || posts[0].Influencer != "@luxurycars_cl" {
		t.Errorf("posts[0] = %+v", posts[0])
	}

	_, err := LoadPosts(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Errorf("LoadPosts(missing) error = nil")
	}

	path := filepath.Join(t.TempDir(), "noid.yaml")
	os.WriteFile(path, []byte("- title: nameless\n"), 0o600)
	if _, err = LoadPosts(path); err == nil {
		t.Errorf("LoadPosts(noid) error = nil")
	}
}

func TestPostView(t *testing.T) {

	posts := loadPosts(t)

	tests := []struct {
		name string
		snap view.Snapshot
		want []string
	}{
		{
			name: "trending only",
			snap: view.Snapshot{Selection: nt.Selection{"highlight": {"trending"}}},
			want: []string{"1", "2"},
		},
		{
			name: "featured on youtube",
			snap: view.Snapshot{Selection: nt.Selection{"highlight": {"featured"}, "platform": {"YouTube"}}},
			want: []string{"3"},
		},
		{
			name: "any selected tag",
			snap: view.Snapshot{Selection: nt.Selection{"tags": {"#review", "#f8"}}},
			want: []string{"1", "3", "4"},
		},
		{
			name: "search influencer",
			snap: view.Snapshot{Search: "SUPERCARS"},
			want: []string{"2"},
		},
		{
			name: "most viewed first with unparseable views last",
			snap: view.Snapshot{Sort: &nt.Sort{Field: "views", Dir: nt.Desc}},
			want: []string{"4", "1", "2", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, pst := range view.Compute(PostSchema, posts, tt.snap) {
				got = append(got, pst.Id)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
		})
	}

	tags, ok := view.Facets(PostSchema, posts, "tags")
	want := []string{"#porsche", "#gt3", "#review", "#lamborghini", "#sto", "#ferrari", "#f8", "#bmw"}
	if !ok || !reflect.DeepEqual(tags, want) {
		t.Errorf("Facets(tags) = %v, want %v", tags, want)
	}
}
