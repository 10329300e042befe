package orbit

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the delivery status of a project.
type Status string

const (
	StatusCompleted  Status = "Completed"
	StatusInProgress Status = "In Progress"
	StatusConcept    Status = "Concept"
)

// Specifications holds the free-form figures shown on a project detail page.
type Specifications struct {
	Area    string `yaml:"area,omitempty" json:"area,omitempty"`
	Floors  string `yaml:"floors,omitempty" json:"floors,omitempty"`
	Units   string `yaml:"units,omitempty" json:"units,omitempty"`
	Parking string `yaml:"parking,omitempty" json:"parking,omitempty"`
}

// Item is one project in the collection. Images must be non-empty and ID must
// be unique within a collection; see ValidateItems.
type Item struct {
	ID             string         `yaml:"id" json:"id"`
	Slug           string         `yaml:"slug,omitempty" json:"slug,omitempty"`
	Title          string         `yaml:"title" json:"title"`
	Categories     []string       `yaml:"categories" json:"categories"`
	Location       string         `yaml:"location,omitempty" json:"location,omitempty"`
	Client         string         `yaml:"client,omitempty" json:"client,omitempty"`
	Status         Status         `yaml:"status,omitempty" json:"status,omitempty"`
	Summary        string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
	Features       []string       `yaml:"features,omitempty" json:"features,omitempty"`
	Images         []string       `yaml:"images" json:"images"`
	Specifications Specifications `yaml:"specifications,omitempty" json:"specifications,omitempty"`
}

// HasCategory reports whether the item is tagged with the category id.
func (it *Item) HasCategory(id string) bool {
	for _, c := range it.Categories {
		if c == id {
			return true
		}
	}
	return false
}

// Cover returns the first image reference, or "" when there is none.
func (it *Item) Cover() string {
	if len(it.Images) == 0 {
		return ""
	}
	return it.Images[0]
}

// matches reports whether the lower-cased query occurs in the title,
// categories, location or description.
func (it *Item) matches(query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Title), query) ||
		strings.Contains(strings.ToLower(it.Location), query) ||
		strings.Contains(strings.ToLower(it.Description), query) {
		return true
	}
	for _, c := range it.Categories {
		if strings.Contains(strings.ToLower(c), query) {
			return true
		}
	}
	return false
}

// Category is a filter option. Categories are flat, not hierarchical.
type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

var (
	// ErrNoImages is reported for an item with an empty image list.
	ErrNoImages = errors.New("item has no images")
	// ErrDuplicateID is reported for an item whose id is already in use.
	ErrDuplicateID = errors.New("duplicate item id")
	// ErrMissingID is reported for an item with an empty id.
	ErrMissingID = errors.New("item has no id")
)

// ItemError ties a validation failure to the offending item.
type ItemError struct {
	Index int
	ID    string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (%q): %v", e.Index, e.ID, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// ValidationError lists every problem found in a collection.
type ValidationError struct {
	Problems []*ItemError
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "orbit: invalid collection: " + e.Problems[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "orbit: invalid collection: %d problems", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.Error())
	}
	return b.String()
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p
	}
	return errs
}

// ValidateItems checks the collection invariants: every item has an id and
// at least one image, and ids are unique. It returns a *ValidationError
// listing every violation, or nil.
func ValidateItems(items []Item) error {
	var problems []*ItemError
	seen := make(map[string]int, len(items))
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			problems = append(problems, &ItemError{Index: i, Err: ErrMissingID})
		} else if _, dup := seen[it.ID]; dup {
			problems = append(problems, &ItemError{Index: i, ID: it.ID, Err: ErrDuplicateID})
		} else {
			seen[it.ID] = i
		}
		if len(it.Images) == 0 {
			problems = append(problems, &ItemError{Index: i, ID: it.ID, Err: ErrNoImages})
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// CategoriesOf derives the category list from the items in first-seen order.
// Names are the ids with the first letter upper-cased.
func CategoriesOf(items []Item) []Category {
	var cats []Category
	seen := make(map[string]bool)
	for i := range items {
		for _, c := range items[i].Categories {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			cats = append(cats, Category{ID: c, Name: titleCase(c)})
		}
	}
	return cats
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
