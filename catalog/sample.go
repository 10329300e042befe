package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phanxgames/orbit"
)

// SampleSize is the number of projects in Sample.
const SampleSize = 30

var sampleCovers = []string{
	"assets/projects/mourad-elgendy/main.jpg",
	"assets/projects/hassen-mo-hassen/main.jpg",
	"assets/projects/yasser-zaki/main.jpg",
	"assets/projects/kh-elfaky/main.jpg",
	"assets/project (5).JPG",
	"assets/project (6).jpg",
	"assets/project (7).jpg",
	"assets/project (8).jpg",
	"assets/project (9).jpg",
	"assets/project (10).jpg",
	"assets/project (11).jpg",
	"assets/project (12).jpg",
	"assets/project (13).jpg",
}

type namedProject struct {
	title, slug string
	gallery     []string
}

var sampleNamed = []namedProject{
	{"Dr. Mourad Elgendy building", "dr-mourad-elgendy-building", galleryOf("mourad-elgendy", 3)},
	{"Eng. Hassen Mo. Hassen", "eng-hassen-mo-hassen", galleryOf("hassen-mo-hassen", 2)},
	{"Mr. Yasser Zaki", "mr-yasser-zaki", galleryOf("yasser-zaki", 2)},
	{"Mr. Kh. Elfaky", "mr-kh-elfaky", galleryOf("kh-elfaky", 1)},
}

func galleryOf(dir string, n int) []string {
	imgs := []string{"assets/projects/" + dir + "/main.jpg"}
	for i := 1; i <= n; i++ {
		imgs = append(imgs, fmt.Sprintf("assets/projects/%s/gallery%d.jpg", dir, i))
	}
	return imgs
}

func unsplashImage(i int) string {
	return fmt.Sprintf("https://images.unsplash.com/photo-%d?auto=format&fit=crop&w=1600&q=80", 1500000000000+i)
}

// Sample returns the built-in demo collection: thirty generated projects, the
// first thirteen with local images and the rest on Unsplash.
func Sample() *Catalog {
	kinds := []string{"Residence", "Tower", "Plaza", "Villa", "Loft"}
	categories := []string{"interior", "commercial", "residential", "exterior"}
	locations := []string{"Dubai, UAE", "Riyadh, KSA", "London, UK", "Cairo, Egypt", "Doha, Qatar"}
	statuses := []orbit.Status{orbit.StatusCompleted, orbit.StatusInProgress, orbit.StatusConcept}

	items := make([]orbit.Item, 0, SampleSize)
	for i := 0; i < SampleSize; i++ {
		it := orbit.Item{
			ID:          fmt.Sprintf("proj-%d", i+1),
			Slug:        fmt.Sprintf("project-%d", i+1),
			Title:       fmt.Sprintf("Project %d %s", i+1, kinds[i%len(kinds)]),
			Categories:  []string{categories[i%len(categories)]},
			Location:    locations[i%len(locations)],
			Client:      fmt.Sprintf("Client %d", i+1),
			Status:      statuses[i%len(statuses)],
			Summary:     "A visionary architectural endeavor redefining modern living and sustainable design.",
			Description: "This project represents a culmination of modern architectural principles, blending functionality with aesthetic excellence. The design focuses on sustainable materials, natural light optimization, and seamless integration with the surrounding environment.",
			Features:    []string{"Sustainable Design", "Smart Home Integration", "Panoramic Views", "Green Spaces"},
			Specifications: orbit.Specifications{
				Area:    fmt.Sprintf("%d sqm", 2000+i*100),
				Floors:  strconv.Itoa(5 + i%20),
				Parking: "Underground",
			},
		}
		if i%2 == 0 {
			it.Specifications.Units = strconv.Itoa(10 + i)
		}

		switch {
		case i < len(sampleNamed):
			p := sampleNamed[i]
			it.Title, it.Slug = p.title, p.slug
			it.Categories = []string{"residential", "exterior"}
			it.Images = append([]string(nil), p.gallery...)
		case i < len(sampleCovers):
			it.Images = []string{sampleCovers[i], sampleCovers[(i+1)%len(sampleCovers)]}
		default:
			it.Images = []string{unsplashImage(i), unsplashImage(i + 100)}
		}
		items = append(items, it)
	}
	cats := make([]orbit.Category, len(categories))
	for i, c := range categories {
		cats[i] = orbit.Category{ID: c, Name: strings.ToUpper(c[:1]) + c[1:]}
	}
	return &Catalog{Categories: cats, Items: items}
}
