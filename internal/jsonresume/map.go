// Package jsonresume maps site content into the public JSON Resume format.
package jsonresume

import (
	"regexp"
	"sort"
	"strings"

	"github.com/igegov/cv-portfolio/internal/prune"
	"github.com/igegov/cv-portfolio/internal/types"
)

// Education study types
const (
	StudyTypeCourse   = "Course"
	StudyTypeAcademic = "Academic"
)

var coursePattern = regexp.MustCompile(`(?i)course`)

// Map converts CVData into a JSON Resume document.
// Map never fails: fields that cannot be derived are left out of the result.
func Map(cv *types.CVData) *types.JSONResume {
	if cv == nil {
		return &types.JSONResume{Schema: types.JSONResumeSchemaURL}
	}

	doc := &types.JSONResume{
		Schema:    types.JSONResumeSchemaURL,
		Basics:    mapBasics(cv),
		Work:      mapWork(cv.Experience),
		Education: mapEducation(cv.Education),
		Skills:    AggregateSkills(cv.Skills),
		Projects:  mapProjects(cv.Portfolio),
		Languages: mapLanguages(cv.Languages),
	}

	stripped, err := prune.Strip(doc)
	if err != nil || stripped == nil {
		return doc
	}
	stripped.Schema = types.JSONResumeSchemaURL
	return stripped
}

func mapBasics(cv *types.CVData) *types.Basics {
	return &types.Basics{
		Name:     strings.TrimSpace(cv.Hero.Name),
		Label:    strings.TrimSpace(cv.Hero.Title),
		Image:    strings.TrimSpace(cv.Hero.PhotoURL),
		Email:    strings.TrimSpace(cv.Contact.Email),
		Phone:    strings.TrimSpace(cv.Contact.Phone),
		URL:      PrimaryURL(cv),
		Summary:  Summary(cv.About.Paragraphs),
		Location: ParseLocation(cv.Contact.Location),
		Profiles: BuildProfiles(cv.Contact),
	}
}

// Summary joins the unique non-empty paragraphs with a blank line between them
func Summary(paragraphs []string) string {
	return strings.Join(uniqueStrings(paragraphs), "\n\n")
}

// PrimaryURL picks the resume's home URL: the contact website when it is http(s),
// otherwise the first portfolio item (by order) with an http(s) URL.
func PrimaryURL(cv *types.CVData) string {
	if IsHTTPURL(cv.Contact.Website) {
		return strings.TrimSpace(cv.Contact.Website)
	}
	for _, item := range SortedPortfolio(cv.Portfolio) {
		if IsHTTPURL(item.URL) {
			return strings.TrimSpace(item.URL)
		}
	}
	return ""
}

// SortedPortfolio returns a copy of items stably sorted by Order
func SortedPortfolio(items []types.PortfolioItem) []types.PortfolioItem {
	sorted := make([]types.PortfolioItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

func mapWork(items []types.ExperienceItem) []types.Work {
	work := make([]types.Work, 0, len(items))
	for _, item := range items {
		start, _ := NormalizeDate(item.StartDate)
		end, _ := NormalizeDate(item.EndDate)

		var url string
		for _, link := range item.Links {
			if IsHTTPURL(link.URL) {
				url = strings.TrimSpace(link.URL)
				break
			}
		}

		work = append(work, types.Work{
			Name:       strings.TrimSpace(item.Company),
			Position:   strings.TrimSpace(item.Role),
			URL:        url,
			StartDate:  start,
			EndDate:    end,
			Summary:    strings.TrimSpace(item.Description),
			Highlights: uniqueStrings(item.Highlights),
			Location:   strings.TrimSpace(item.Location),
		})
	}
	return work
}

func mapEducation(items []types.EducationItem) []types.Education {
	education := make([]types.Education, 0, len(items))
	for _, item := range items {
		start, _ := NormalizeDate(item.StartDate)
		end, _ := NormalizeDate(item.EndDate)

		studyType := StudyTypeAcademic
		if coursePattern.MatchString(item.Degree) {
			studyType = StudyTypeCourse
		}

		var courses []string
		if description := strings.TrimSpace(item.Description); description != "" {
			courses = []string{description}
		}

		education = append(education, types.Education{
			Institution: strings.TrimSpace(item.Institution),
			Area:        strings.TrimSpace(item.Degree),
			StudyType:   studyType,
			StartDate:   start,
			EndDate:     end,
			Courses:     courses,
		})
	}
	return education
}

func mapProjects(items []types.PortfolioItem) []types.Project {
	sorted := SortedPortfolio(items)
	projects := make([]types.Project, 0, len(sorted))
	for _, item := range sorted {
		start, end := PortfolioDates(item.Year)

		names := make([]string, 0, len(item.Games))
		for _, g := range item.Games {
			names = append(names, g.Name)
		}

		projects = append(projects, types.Project{
			Name:        strings.TrimSpace(item.Title),
			StartDate:   start,
			EndDate:     end,
			Description: strings.TrimSpace(item.Descriptor),
			Highlights:  uniqueStrings(names),
			URL:         strings.TrimSpace(item.URL),
		})
	}
	return projects
}

func mapLanguages(items []types.LanguageItem) []types.Language {
	languages := make([]types.Language, 0, len(items))
	for _, item := range items {
		languages = append(languages, types.Language{
			Language: strings.TrimSpace(item.Language),
			Fluency:  strings.TrimSpace(item.Proficiency),
		})
	}
	return languages
}
