package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/profile-finder/internal/model"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		hit  model.RawHit
		want model.ExtractedProfile
	}{
		{
			name: "title company and labeled snippet",
			hit: model.RawHit{
				Title: "Jane Doe - Senior Software Engineer - Acme Inc. | LinkedIn",
				Snippet: "Experience: Acme Inc. · Location: Austin, Texas, United States · 500+ connections on LinkedIn. " +
					"View Jane Doe's profile on LinkedIn, a professional community of 1 billion members. Jane builds payment systems.",
			},
			want: model.ExtractedProfile{
				NameExtracted: "Jane Doe",
				JobTitle:      "Senior Software Engineer",
				Company:       "Acme Inc.",
				Location:      "Austin, Texas, United States",
				Connections:   "500+",
				Bio:           "Jane builds payment systems",
			},
		},
		{
			name: "title at company",
			hit: model.RawHit{
				Title:   "Jane Doe - VP of Sales at Globex Corporation | LinkedIn",
				Snippet: "Dallas, TX · 312 connections",
			},
			want: model.ExtractedProfile{
				NameExtracted: "Jane Doe",
				JobTitle:      "VP of Sales",
				Company:       "Globex Corporation",
				Location:      "Dallas, TX",
				Connections:   "312",
			},
		},
		{
			name: "second segment with legal suffix is the company",
			hit:  model.RawHit{Title: "Jane Doe – Acme Inc. – LinkedIn"},
			want: model.ExtractedProfile{NameExtracted: "Jane Doe", Company: "Acme Inc."},
		},
		{
			name: "second segment matching experience is the company",
			hit: model.RawHit{
				Title:   "John Smith - Initech | LinkedIn",
				Snippet: "Experience: Initech · Education: State University",
			},
			want: model.ExtractedProfile{
				NameExtracted: "John Smith",
				Company:       "Initech",
				Bio:           "Education: State University",
			},
		},
		{
			name: "role from snippet",
			hit: model.RawHit{
				Title:   "Mike Johnson - Portfolio Manager | LinkedIn",
				Snippet: "Portfolio Manager at Vanguard · Greater Philadelphia Area",
			},
			want: model.ExtractedProfile{
				NameExtracted: "Mike Johnson",
				JobTitle:      "Portfolio Manager",
				Company:       "Vanguard",
				Location:      "Greater Philadelphia Area",
			},
		},
		{
			name: "trailing place in title",
			hit:  model.RawHit{Title: "Ana Lima - Data Scientist - Nubank - São Paulo, Brazil"},
			want: model.ExtractedProfile{
				NameExtracted: "Ana Lima",
				JobTitle:      "Data Scientist",
				Company:       "Nubank",
				Location:      "São Paulo, Brazil",
			},
		},
		{
			name: "connections with thousands separator",
			hit: model.RawHit{
				Title:   "Sam Lee - LinkedIn",
				Snippet: "Chicago, Illinois · 1,234 connections",
			},
			want: model.ExtractedProfile{
				NameExtracted: "Sam Lee",
				Location:      "Chicago, Illinois",
				Connections:   "1234",
			},
		},
		{
			name: "name only",
			hit:  model.RawHit{Title: "Jane Doe"},
			want: model.ExtractedProfile{NameExtracted: "Jane Doe"},
		},
		{
			name: "empty title",
			hit:  model.RawHit{Snippet: "Experience: Acme"},
			want: model.ExtractedProfile{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.hit))
		})
	}
}

func TestIsPlace(t *testing.T) {
	assert.True(t, isPlace("Dallas, TX"))
	assert.True(t, isPlace("Greater Boston Area"))
	assert.True(t, isPlace("San Francisco Bay Area"))
	assert.True(t, isPlace("Toronto, Ontario, Canada"))
	assert.True(t, isPlace("Chicago, Illinois"))
	assert.False(t, isPlace("Acme, Inc."))
	assert.False(t, isPlace("Widgets, Gadgets"))
	assert.False(t, isPlace("Senior Engineer"))
	assert.False(t, isPlace(""))
}
