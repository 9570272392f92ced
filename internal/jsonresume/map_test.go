package jsonresume

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igegov/cv-portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSampleCV(t *testing.T) *types.CVData {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "cv", "sample_cv.json"))
	require.NoError(t, err)

	var cv types.CVData
	require.NoError(t, json.Unmarshal(data, &cv))
	return &cv
}

func minimalCV() *types.CVData {
	return &types.CVData{
		Hero: types.Hero{Name: "Ivan Gegov"},
		Experience: []types.ExperienceItem{
			{
				ID:        "exp-1",
				Role:      "Animator",
				Company:   "Studio",
				StartDate: "Mar 2021",
				EndDate:   "Present",
			},
		},
		Contact: types.Contact{Email: "x@example.com"},
	}
}

func TestMap_Minimal(t *testing.T) {
	doc := Map(minimalCV())

	assert.Equal(t, types.JSONResumeSchemaURL, doc.Schema)
	require.NotNil(t, doc.Basics)
	assert.Equal(t, "Ivan Gegov", doc.Basics.Name)
	assert.Equal(t, "x@example.com", doc.Basics.Email)
	assert.Empty(t, doc.Basics.Phone)
	assert.Nil(t, doc.Basics.Location)
	assert.Nil(t, doc.Basics.Profiles)

	require.Len(t, doc.Work, 1)
	assert.Equal(t, "2021-03-01", doc.Work[0].StartDate)
	assert.Empty(t, doc.Work[0].EndDate)

	assert.Nil(t, doc.Education)
	assert.Nil(t, doc.Skills)
	assert.Nil(t, doc.Projects)
	assert.Nil(t, doc.Languages)
}

func TestMap_OmitsAbsentFields(t *testing.T) {
	doc := Map(minimalCV())

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	out := string(data)

	assert.NotContains(t, out, "null")
	assert.NotContains(t, out, `""`)
	assert.NotContains(t, out, `"phone"`)
	assert.NotContains(t, out, `"endDate"`)
	assert.NotContains(t, out, "[]")
	assert.NotContains(t, out, "{}")
}

func TestMap_Idempotent(t *testing.T) {
	cv := loadSampleCV(t)

	first := Map(cv)
	second := Map(cv)
	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMap_DoesNotMutateInput(t *testing.T) {
	cv := loadSampleCV(t)
	before, err := json.Marshal(cv)
	require.NoError(t, err)

	Map(cv)

	after, err := json.Marshal(cv)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestMap_NilInput(t *testing.T) {
	doc := Map(nil)
	require.NotNil(t, doc)
	assert.Equal(t, types.JSONResumeSchemaURL, doc.Schema)
	assert.Nil(t, doc.Basics)
}

func TestMap_SampleBasics(t *testing.T) {
	doc := Map(loadSampleCV(t))
	require.NotNil(t, doc.Basics)

	basics := doc.Basics
	assert.Equal(t, "Ivan Gegov", basics.Name)
	assert.Equal(t, "Senior Animator / Animation Lead · Compositing · VFX", basics.Label)
	assert.Equal(t, "/assets/slackPic.png", basics.Image)
	assert.Equal(t, "https://vimeo.com/283914588", basics.URL)
	assert.Equal(t, 2, strings.Count(basics.Summary, "\n\n")+1)
	assert.Equal(t, &types.Location{City: "Sofia", Region: "Bulgaria", CountryCode: "BG"}, basics.Location)

	assert.Equal(t, []types.Profile{
		{Network: "YouTube", Username: "ogwVYZrWI6s", URL: "https://youtu.be/ogwVYZrWI6s"},
		{Network: "Vimeo", Username: "283914588", URL: "https://vimeo.com/283914588"},
	}, basics.Profiles)
}

func TestMap_SampleWork(t *testing.T) {
	doc := Map(loadSampleCV(t))
	require.Len(t, doc.Work, 4)

	dopamine := doc.Work[0]
	assert.Equal(t, "Dopamine (Red Tiger)", dopamine.Name)
	assert.Equal(t, "Senior Animator / Animation Lead", dopamine.Position)
	assert.Equal(t, "2021-03-01", dopamine.StartDate)
	assert.Empty(t, dopamine.EndDate)
	assert.Empty(t, dopamine.URL)
	assert.Len(t, dopamine.Highlights, 3)
	assert.Equal(t, "Sofia, Bulgaria", dopamine.Location)

	assert.Equal(t, "https://youtu.be/ogwVYZrWI6s", doc.Work[1].URL)

	chase := doc.Work[2]
	assert.Equal(t, "2018-08-01", chase.StartDate)
	assert.Equal(t, "2020-06-01", chase.EndDate)
	assert.Equal(t, "https://vimeo.com/283914588", chase.URL)
}

func TestMap_SampleEducation(t *testing.T) {
	doc := Map(loadSampleCV(t))
	require.Len(t, doc.Education, 2)

	course := doc.Education[0]
	assert.Equal(t, StudyTypeCourse, course.StudyType)
	assert.Equal(t, "\"Drugs and the Brain\" Course", course.Area)
	assert.Equal(t, "2012-09-01", course.StartDate)
	assert.Equal(t, "2013-01-01", course.EndDate)
	assert.Len(t, course.Courses, 1)

	academic := doc.Education[1]
	assert.Equal(t, StudyTypeAcademic, academic.StudyType)
	assert.Nil(t, academic.Courses)
}

func TestMap_SampleProjects(t *testing.T) {
	doc := Map(loadSampleCV(t))
	require.Len(t, doc.Projects, 3)

	names := []string{doc.Projects[0].Name, doc.Projects[1].Name, doc.Projects[2].Name}
	assert.Equal(t, []string{"National Geographic® Brain Freeze", "Showreel", "Red Tiger collection"}, names)

	assert.Equal(t, "2018-01-01", doc.Projects[0].StartDate)
	assert.Equal(t, "2018-12-31", doc.Projects[0].EndDate)
	assert.Nil(t, doc.Projects[0].Highlights)

	collection := doc.Projects[2]
	assert.Equal(t, "2021-01-01", collection.StartDate)
	assert.Equal(t, "2025-12-31", collection.EndDate)
	assert.Equal(t, "https://redtiger.com/games", collection.URL)
	assert.Equal(t, []string{
		"DragonBoyz",
		"Bass Boss",
		"Judgment Day MegaWays",
		"Piñatas & Ponies",
		"7's Luck",
	}, collection.Highlights)
}

func TestMap_SampleSkillsAndLanguages(t *testing.T) {
	doc := Map(loadSampleCV(t))

	require.Len(t, doc.Skills, 4)
	assert.Equal(t, "Adobe", doc.Skills[0].Name)
	assert.Equal(t, types.Skill{Name: "Animation", Keywords: []string{"Spine 2D", "Cascadeur"}}, doc.Skills[1])
	assert.Equal(t, "AI & Emerging Tools", doc.Skills[2].Name)
	assert.Equal(t, PersonalSkillsGroup, doc.Skills[3].Name)

	assert.Equal(t, []types.Language{
		{Language: "Bulgarian", Fluency: "Native"},
		{Language: "English", Fluency: "C1 Advanced"},
	}, doc.Languages)
}

func TestMap_StablePortfolioOrder(t *testing.T) {
	cv := &types.CVData{
		Hero: types.Hero{Name: "n"},
		Portfolio: []types.PortfolioItem{
			{ID: "b", Order: 2, Title: "B"},
			{ID: "a1", Order: 1, Title: "A1"},
			{ID: "a2", Order: 1, Title: "A2"},
		},
	}

	doc := Map(cv)
	require.Len(t, doc.Projects, 3)
	assert.Equal(t, "A1", doc.Projects[0].Name)
	assert.Equal(t, "A2", doc.Projects[1].Name)
	assert.Equal(t, "B", doc.Projects[2].Name)
}

func TestPrimaryURL(t *testing.T) {
	cv := &types.CVData{
		Contact: types.Contact{Website: "https://example.com"},
		Portfolio: []types.PortfolioItem{
			{Order: 1, URL: "https://vimeo.com/1"},
		},
	}
	assert.Equal(t, "https://example.com", PrimaryURL(cv))

	cv.Contact.Website = "example.com"
	assert.Equal(t, "https://vimeo.com/1", PrimaryURL(cv))

	cv.Portfolio[0].URL = "/local"
	assert.Equal(t, "", PrimaryURL(cv))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "a\n\nb", Summary([]string{" a ", "", "b", "a"}))
	assert.Equal(t, "", Summary(nil))
}
