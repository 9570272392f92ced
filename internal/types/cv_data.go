// Package types provides type definitions for the site content model and the JSON Resume document.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Portfolio item types
const (
	PortfolioTypeProject    = "project"
	PortfolioTypeCollection = "collection"
)

// CVData is the full content model rendered by the portfolio site
type CVData struct {
	Hero       Hero             `json:"hero" yaml:"hero"`
	About      About            `json:"about" yaml:"about"`
	Experience []ExperienceItem `json:"experience" yaml:"experience" validate:"dive"`
	Portfolio  []PortfolioItem  `json:"portfolio" yaml:"portfolio" validate:"dive"`
	Skills     Skills           `json:"skills" yaml:"skills"`
	Languages  []LanguageItem   `json:"languages" yaml:"languages" validate:"dive"`
	Education  []EducationItem  `json:"education" yaml:"education" validate:"dive"`
	Contact    Contact          `json:"contact" yaml:"contact"`
}

// Hero is the landing section: who, what, and a portrait
type Hero struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Title     string `json:"title" yaml:"title"`
	Subtitle  string `json:"subtitle" yaml:"subtitle"`
	PhotoURL  string `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty"`
	ResumeURL string `json:"resumeUrl,omitempty" yaml:"resumeUrl,omitempty"`
}

// About holds the free-text biography
type About struct {
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
}

// Link is a labelled URL attached to an experience entry
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url" validate:"required"`
}

// ExperienceItem is a single role held at a company.
// StartDate and EndDate are free-form ("Mar 2021", "2024", "Present").
type ExperienceItem struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Role        string   `json:"role" yaml:"role" validate:"required"`
	Company     string   `json:"company" yaml:"company" validate:"required"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string   `json:"startDate" yaml:"startDate"`
	EndDate     string   `json:"endDate" yaml:"endDate"`
	Description string   `json:"description" yaml:"description"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Links       []Link   `json:"links,omitempty" yaml:"links,omitempty" validate:"dive"`
}

// Game is a sub-item of a collection-type portfolio entry
type Game struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
	Year string `json:"year,omitempty" yaml:"year,omitempty"`
}

// PortfolioItem is a showcased work. Order defines display and export sequencing.
// Year is either a single 4-digit year or a "YYYY-YYYY" range.
type PortfolioItem struct {
	ID         string `json:"id" yaml:"id" validate:"required"`
	Order      int    `json:"order" yaml:"order"`
	Title      string `json:"title" yaml:"title" validate:"required"`
	Descriptor string `json:"descriptor" yaml:"descriptor"`
	Year       string `json:"year,omitempty" yaml:"year,omitempty"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	URL        string `json:"url" yaml:"url"`
	CTALabel   string `json:"ctaLabel,omitempty" yaml:"ctaLabel,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=project collection"`
	Games      []Game `json:"games,omitempty" yaml:"games,omitempty" validate:"dive"`
}

// IsCollection reports whether the item aggregates games rather than being a single work
func (p *PortfolioItem) IsCollection() bool {
	return p.Type == PortfolioTypeCollection
}

// SkillGroup is a named list of skills inside a section
type SkillGroup struct {
	Category string   `json:"category" yaml:"category"`
	Skills   []string `json:"skills" yaml:"skills"`
	Note     string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// SkillSection groups skill groups under a heading
type SkillSection struct {
	Title  string       `json:"title" yaml:"title"`
	Groups []SkillGroup `json:"groups" yaml:"groups"`
}

// Skills holds sectioned technical skills and a flat list of personal skills
type Skills struct {
	Sections []SkillSection `json:"sections" yaml:"sections"`
	Personal []string       `json:"personal" yaml:"personal"`
}

// LanguageItem is a spoken language with a free-text proficiency and a 1-5 level
type LanguageItem struct {
	Language    string `json:"language" yaml:"language" validate:"required"`
	Proficiency string `json:"proficiency" yaml:"proficiency"`
	Level       int    `json:"level" yaml:"level" validate:"min=1,max=5"`
}

// EducationItem is a degree, course, or academic period
type EducationItem struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Degree      string `json:"degree" yaml:"degree" validate:"required"`
	Institution string `json:"institution" yaml:"institution" validate:"required"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ContactLink is an arbitrary extra link shown in the contact section
type ContactLink struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url" validate:"required"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Contact holds reachability details. Location is free text ("City, Country").
type Contact struct {
	Email    string        `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone    string        `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location string        `json:"location" yaml:"location"`
	Website  string        `json:"website,omitempty" yaml:"website,omitempty"`
	LinkedIn string        `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Vimeo    string        `json:"vimeo,omitempty" yaml:"vimeo,omitempty"`
	IMDb     string        `json:"imdb,omitempty" yaml:"imdb,omitempty"`
	Links    []ContactLink `json:"links" yaml:"links" validate:"dive"`
}

// Validate validates the CVData using the validator.
func (c *CVData) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// FindPortfolioItem returns a pointer into Portfolio for the given ID, or nil
func (c *CVData) FindPortfolioItem(id string) *PortfolioItem {
	for i := range c.Portfolio {
		if c.Portfolio[i].ID == id {
			return &c.Portfolio[i]
		}
	}
	return nil
}
