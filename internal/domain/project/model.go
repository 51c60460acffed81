package project

import "time"

// Category classifies a project in the portfolio.
type Category string

const (
	CategoryWebApp    Category = "Web App"
	CategoryMobileApp Category = "Mobile App"
	CategoryWebsite   Category = "Website"
	CategoryECommerce Category = "E-commerce"
	CategorySaaS      Category = "SaaS"
	CategoryAI        Category = "AI/ML"
	CategoryDesign    Category = "Design"
	CategoryOther     Category = "Other"
)

// Categories returns every project category in display order.
func Categories() []Category {
	return []Category{
		CategoryWebApp,
		CategoryMobileApp,
		CategoryWebsite,
		CategoryECommerce,
		CategorySaaS,
		CategoryAI,
		CategoryDesign,
		CategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// LinkType describes what a project link points at.
type LinkType string

const (
	LinkRepository LinkType = "repository"
	LinkLive       LinkType = "live"
	LinkCaseStudy  LinkType = "case_study"
	LinkOther      LinkType = "other"
)

// Link is an external reference attached to a project.
type Link struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	URL   string   `json:"url"`
	Type  LinkType `json:"type"`
}

// Project is a single portfolio item owned by one user.
type Project struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     Category  `json:"category"`
	ProfileOwner string    `json:"profileOwner"`
	Tags         []string  `json:"tags"`
	Links        []Link    `json:"links"`
	LastModified time.Time `json:"lastModified"`
}

// HasTag reports whether tag is present by exact value.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
