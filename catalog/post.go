package catalog

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nt "vitrina/entity"
	"vitrina/view"
)

// Platform a post was published on.
type Platform string

const (
	TikTok  Platform = "TikTok"
	YouTube Platform = "YouTube"
)

// Post is one item in the content hub gallery.
type Post struct {
	Id          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Influencer  string    `yaml:"influencer" json:"influencer"`
	Platform    Platform  `yaml:"platform" json:"platform"`
	AspectRatio string    `yaml:"aspect_ratio" json:"aspect_ratio"`
	Views       string    `yaml:"views" json:"views"`
	Likes       string    `yaml:"likes" json:"likes"`
	Trending    bool      `yaml:"trending" json:"trending"`
	Featured    bool      `yaml:"featured" json:"featured"`
	Vehicle     string    `yaml:"vehicle,omitempty" json:"vehicle,omitempty"`
	Tags        []string  `yaml:"tags" json:"tags"`
	PublishedAt time.Time `yaml:"published_at" json:"published_at"`
}

// Highlights returns "trending" and/or "featured".
func (pst Post) Highlights() []string {

	highlights := []string{}
	if pst.Trending {
		highlights = append(highlights, "trending")
	}
	if pst.Featured {
		highlights = append(highlights, "featured")
	}
	return highlights
}

// PostSchema registers the post fields the gallery searches, sorts and filters.
var PostSchema = view.NewSchema(
	view.Field[Post]{Name: "title", Kind: nt.Text, Searchable: true, Get: func(pst Post) nt.Value {
		return text(pst.Title)
	}},
	view.Field[Post]{Name: "influencer", Kind: nt.Text, Searchable: true, Get: func(pst Post) nt.Value {
		return text(pst.Influencer)
	}},
	view.Field[Post]{Name: "platform", Kind: nt.Category, Facet: true, Get: func(pst Post) nt.Value {
		return text(string(pst.Platform))
	}},
	view.Field[Post]{Name: "highlight", Kind: nt.Tags, Facet: true, Get: func(pst Post) nt.Value {
		return nt.Value{Raw: pst.Highlights()}
	}},
	view.Field[Post]{Name: "tags", Kind: nt.Tags, Searchable: true, Facet: true, Get: func(pst Post) nt.Value {
		return nt.Value{Raw: pst.Tags}
	}},
	view.Field[Post]{Name: "views", Kind: nt.Number, Get: func(pst Post) nt.Value {
		return count(pst.Views)
	}},
	view.Field[Post]{Name: "likes", Kind: nt.Number, Get: func(pst Post) nt.Value {
		return count(pst.Likes)
	}},
	view.Field[Post]{Name: "published_at", Kind: nt.Text, Get: func(pst Post) nt.Value {
		if pst.PublishedAt.IsZero() {
			return nt.Value{}
		}
		return nt.Value{Raw: pst.PublishedAt.UTC().Format(time.RFC3339)}
	}},
)

// ParseCount reads an abbreviated count such as "1.2M", "245K" or "980".
func ParseCount(text string) (count float64, err error) {

	text = strings.TrimSpace(strings.ToUpper(text))
	mult := 1.0

	switch {
	case strings.HasSuffix(text, "K"):
		mult = 1e3
	case strings.HasSuffix(text, "M"):
		mult = 1e6
	case strings.HasSuffix(text, "B"):
		mult = 1e9
	}
	if mult != 1 {
		text = text[:len(text)-1]
	}

	count, err = strconv.ParseFloat(text, 64)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse count")
		return
	}

	count *= mult
	return
}

// LoadPosts reads gallery posts from a yaml file.
func LoadPosts(path string) (posts []Post, err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read posts from %s", path)
		return
	}

	err = yaml.Unmarshal(data, &posts)
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal posts")
		return
	}

	for i, pst := range posts {
		if pst.Id == "" {
			err = errors.Errorf("post %d has no id", i)
			return
		}
	}
	return
}

// count is null when the abbreviated count does not parse.
func count(text string) nt.Value {

	num, err := ParseCount(text)
	if err != nil {
		return nt.Value{}
	}
	return nt.Value{Raw: num}
}
