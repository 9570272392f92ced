package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/igegov/cv-portfolio/internal/types"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

const templateName = "resume.html.tmpl"

// HTMLOptions configures RenderHTML.
type HTMLOptions struct {
	// PhotoFallback is used when the resume image is missing or unusable.
	PhotoFallback string
}

type templateData struct {
	Resume *types.JSONResume
	Photo  string
}

var (
	tmplOnce sync.Once
	tmpl     *template.Template
	tmplErr  error
)

func resumeTemplate() (*template.Template, error) {
	tmplOnce.Do(func() {
		tmpl, tmplErr = template.New(templateName).Funcs(template.FuncMap{
			"period":     Period,
			"join":       strings.Join,
			"paragraphs": paragraphs,
			"location":   formatLocation,
		}).ParseFS(templateFS, "templates/"+templateName)
	})
	return tmpl, tmplErr
}

// RenderHTML renders doc as a standalone printable HTML page.
func RenderHTML(doc *types.JSONResume, opts HTMLOptions) (string, error) {
	if doc == nil || doc.Basics == nil {
		return "", &RenderError{Message: "resume has no basics section"}
	}

	t, err := resumeTemplate()
	if err != nil {
		return "", &TemplateError{Message: "failed to parse template", Cause: err}
	}

	data := templateData{
		Resume: doc,
		Photo:  ResolvePhotoURL(doc.Basics.Image, opts.PhotoFallback),
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return buf.String(), nil
}

// Period formats an ISO date range for display: "Mar 2021 – Present".
func Period(start, end string) string {
	s := displayDate(start)
	if s == "" {
		return ""
	}
	e := displayDate(end)
	if e == "" {
		e = "Present"
	}
	return s + " – " + e
}

func displayDate(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, iso); err == nil {
			if layout == "2006" {
				return t.Format("2006")
			}
			return t.Format("Jan 2006")
		}
	}
	return iso
}

func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func formatLocation(l *types.Location) string {
	var parts []string
	for _, p := range []string{l.City, l.Region} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
