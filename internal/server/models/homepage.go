package models

import "time"

// HomePage is the singleton record behind the landing page.
type HomePage struct {
	SiteTitle       string    `json:"siteTitle"`
	UseLogo         bool      `json:"useLogo"`
	LogoImage       *string   `json:"logoImage"`
	HeroTitle       string    `json:"heroTitle"`
	HeroDescription string    `json:"heroDescription"`
	AboutParagraph1 string    `json:"aboutParagraph1"`
	AboutParagraph2 string    `json:"aboutParagraph2"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

const (
	DefaultSiteTitle       = "Green Chemistry Research Group"
	DefaultHeroTitle       = "Advancing Sustainable Chemistry"
	DefaultHeroDescription = "Pioneering research in green chemistry, organocatalysis, and physical organic chemistry to develop environmentally benign chemical processes for a sustainable future."
	DefaultAboutParagraph1 = "The Green Chemistry Research Group is dedicated to developing innovative chemical methodologies that minimize environmental impact while maximizing efficiency and selectivity."
	DefaultAboutParagraph2 = "We focus on designing sustainable synthetic routes, understanding reaction mechanisms at a molecular level, and developing novel catalytic systems."
)

// DefaultHomePage returns the content stored the first time the home page
// is read.
func DefaultHomePage(now time.Time) *HomePage {
	return &HomePage{
		SiteTitle:       DefaultSiteTitle,
		UseLogo:         false,
		LogoImage:       nil,
		HeroTitle:       DefaultHeroTitle,
		HeroDescription: DefaultHeroDescription,
		AboutParagraph1: DefaultAboutParagraph1,
		AboutParagraph2: DefaultAboutParagraph2,
		UpdatedAt:       now,
	}
}
