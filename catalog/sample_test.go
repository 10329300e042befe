package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/orbit"
)

func TestSample(t *testing.T) {
	c := Sample()
	require.Len(t, c.Items, SampleSize)
	require.NoError(t, Validate(c.Items))
	assert.Len(t, c.Categories, 4)

	first := c.Items[0]
	assert.Equal(t, "proj-1", first.ID)
	assert.Equal(t, "dr-mourad-elgendy-building", first.Slug)
	assert.Equal(t, []string{"residential", "exterior"}, first.Categories)
	assert.Len(t, first.Images, 4)
	assert.Equal(t, "10", first.Specifications.Units)

	assert.Equal(t, "mr-kh-elfaky", c.Items[3].Slug)
	assert.Len(t, c.Items[3].Images, 2)

	p5 := c.Items[4]
	assert.Equal(t, "Project 5 Loft", p5.Title)
	assert.Equal(t, []string{"interior"}, p5.Categories)
	assert.Equal(t, "Doha, Qatar", p5.Location)
	assert.Equal(t, orbit.StatusInProgress, p5.Status)
	assert.Equal(t, []string{"assets/project (5).JPG", "assets/project (6).jpg"}, p5.Images)

	p13 := c.Items[12]
	assert.Equal(t, "assets/projects/mourad-elgendy/main.jpg", p13.Images[1], "gallery wraps to the first cover")

	last := c.Items[SampleSize-1]
	assert.Equal(t, "project-30", last.Slug)
	assert.Equal(t, "4900 sqm", last.Specifications.Area)
	assert.Equal(t, "14", last.Specifications.Floors)
	assert.Empty(t, last.Specifications.Units)
	assert.Equal(t, "https://images.unsplash.com/photo-1500000000029?auto=format&fit=crop&w=1600&q=80", last.Cover())
	assert.True(t, IsRemote(last.Images[1]))
}

func TestSampleFilterCounts(t *testing.T) {
	s := orbit.NewViewState(Sample().Items)
	s.SetFilter("residential")
	// Four named projects plus indices 2 mod 4 from 4 on.
	assert.Equal(t, 4+6, s.Len())
}
