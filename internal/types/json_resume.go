package types

// JSONResumeSchemaURL is the canonical location of the public JSON Resume schema
const JSONResumeSchemaURL = "https://raw.githubusercontent.com/jsonresume/resume-schema/master/schema.json"

// JSONResume is a document in the public JSON Resume format.
// Every optional field is omitted from JSON when it has no value.
type JSONResume struct {
	Schema    string      `json:"$schema,omitempty"`
	Basics    *Basics     `json:"basics,omitempty"`
	Work      []Work      `json:"work,omitempty"`
	Education []Education `json:"education,omitempty"`
	Skills    []Skill     `json:"skills,omitempty"`
	Projects  []Project   `json:"projects,omitempty"`
	Languages []Language  `json:"languages,omitempty"`
}

// Basics holds the identity and contact block
type Basics struct {
	Name     string    `json:"name,omitempty"`
	Label    string    `json:"label,omitempty"`
	Image    string    `json:"image,omitempty"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	URL      string    `json:"url,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Location *Location `json:"location,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

// Location is a structured postal location
type Location struct {
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Profile is a social or professional network link
type Profile struct {
	Network  string `json:"network,omitempty"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Work is a single employment entry. Dates are ISO-8601 (YYYY-MM-DD).
type Work struct {
	Name       string   `json:"name,omitempty"`
	Position   string   `json:"position,omitempty"`
	URL        string   `json:"url,omitempty"`
	StartDate  string   `json:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Location   string   `json:"location,omitempty"`
}

// Education is a single education entry
type Education struct {
	Institution string   `json:"institution,omitempty"`
	Area        string   `json:"area,omitempty"`
	StudyType   string   `json:"studyType,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Courses     []string `json:"courses,omitempty"`
}

// Skill is a named group of keywords
type Skill struct {
	Name     string   `json:"name,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Project is a portfolio entry
type Project struct {
	Name        string   `json:"name,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// Language is a spoken language and its fluency label
type Language struct {
	Language string `json:"language,omitempty"`
	Fluency  string `json:"fluency,omitempty"`
}
