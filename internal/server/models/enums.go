package models

import "fmt"

// Category classifies a Person on the people page.
type Category string

const (
	CategoryPI         Category = "pi"
	CategoryPostdoc    Category = "postdoc"
	CategoryPhD        Category = "phd"
	CategoryTechnician Category = "technician"
)

var categories = []Category{CategoryPI, CategoryPostdoc, CategoryPhD, CategoryTechnician}

func (c Category) Valid() bool {
	for _, v := range categories {
		if c == v {
			return true
		}
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Tag labels a NewsItem.
type Tag string

const (
	TagFunding     Tag = "Funding"
	TagAward       Tag = "Award"
	TagPublication Tag = "Publication"
	TagConference  Tag = "Conference"
	TagOutreach    Tag = "Outreach"
	TagTeam        Tag = "Team"
)

var tags = []Tag{TagFunding, TagAward, TagPublication, TagConference, TagOutreach, TagTeam}

func (t Tag) Valid() bool {
	for _, v := range tags {
		if t == v {
			return true
		}
	}
	return false
}

func ParseTag(s string) (Tag, error) {
	t := Tag(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tag %q", s)
	}
	return t, nil
}
