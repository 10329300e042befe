// Package catalog loads project collections for the orbit viewer from YAML
// or JSON files, watches them for edits and checks their images.
package catalog

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/orbit"
)

// Format is the encoding of a catalog document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the format from a file extension. Anything other than
// .json is read as YAML.
func FormatOf(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the on-disk shape of a catalog.
type Document struct {
	Categories []orbit.Category `yaml:"categories,omitempty" json:"categories,omitempty"`
	Projects   []orbit.Item     `yaml:"projects" json:"projects"`
}

// Catalog is a loaded, normalized collection.
type Catalog struct {
	Categories []orbit.Category
	Items      []orbit.Item
	// Dir is the directory relative image references resolve against. It is
	// empty for catalogs not read from a file.
	Dir string
}

// Fetcher returns an image fetcher for the catalog: remote references go
// over HTTP, everything else is read below Dir.
func (c *Catalog) Fetcher() orbit.Fetcher {
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	return orbit.MuxFetcher{
		Remote: orbit.HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}},
		Local:  orbit.FSFetcher{FS: os.DirFS(dir)},
	}
}

type loadOptions struct {
	newID     func() (string, error)
	plainText bool
}

// Option configures Load and LoadFile.
type Option func(*loadOptions)

// WithIDFunc replaces the ULID generator used for projects without an id.
func WithIDFunc(fn func() (string, error)) Option {
	return func(o *loadOptions) { o.newID = fn }
}

// WithMarkdown keeps summary and description as written instead of
// flattening them to plain text.
func WithMarkdown() Option {
	return func(o *loadOptions) { o.plainText = false }
}

// Load reads a catalog document from r, fills in missing ids and slugs and
// validates the result. The error wraps an *orbit.ValidationError when the
// collection is invalid.
func Load(r io.Reader, format Format, opts ...Option) (*Catalog, error) {
	o := loadOptions{newID: newULID, plainText: true}
	for _, opt := range opts {
		opt(&o)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	var doc Document
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	if err := normalize(doc.Projects, &o); err != nil {
		return nil, err
	}
	if err := Validate(doc.Projects); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	cats := doc.Categories
	if len(cats) == 0 {
		cats = Categories(doc.Projects)
	}
	return &Catalog{Categories: cats, Items: doc.Projects}, nil
}

// LoadFile loads the catalog at path. Relative image references resolve
// against the file's directory.
func LoadFile(name string, opts ...Option) (*Catalog, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f, FormatOf(name), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c.Dir = filepath.Dir(name)
	return c, nil
}

// Validate reports empty image lists, missing ids and duplicate ids as an
// *orbit.ValidationError.
func Validate(items []orbit.Item) error {
	return orbit.ValidateItems(items)
}

// Categories derives the category list in first-seen order.
func Categories(items []orbit.Item) []orbit.Category {
	return orbit.CategoriesOf(items)
}

func normalize(items []orbit.Item, o *loadOptions) error {
	slugs := make(map[string]bool, len(items))
	for i := range items {
		if items[i].Slug != "" {
			slugs[items[i].Slug] = true
		}
	}
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			id, err := o.newID()
			if err != nil {
				return fmt.Errorf("catalog: generate id: %w", err)
			}
			it.ID = id
		}
		if it.Slug == "" {
			it.Slug = uniqueSlug(Slugify(it.Title), it.ID, slugs)
		}
		if o.plainText {
			it.Summary = PlainText(it.Summary)
			it.Description = PlainText(it.Description)
		}
		for j, img := range it.Images {
			it.Images[j] = cleanRef(img)
		}
	}
	return nil
}

func uniqueSlug(base, id string, taken map[string]bool) string {
	if base == "" {
		base = strings.ToLower(id)
	}
	slug := base
	for n := 2; taken[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	taken[slug] = true
	return slug
}

// Slugify lower-cases title and joins its letter and digit runs with dashes.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// IsRemote reports whether ref is fetched over HTTP.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func cleanRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || IsRemote(ref) {
		return ref
	}
	return path.Clean(filepath.ToSlash(ref))
}

func newULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
