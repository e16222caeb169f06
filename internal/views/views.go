// Package views holds the embedded page templates and the data each page
// renders.
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/yoockh/jobboard/internal/listing"
	"github.com/yoockh/jobboard/internal/models"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"datetime": func(t time.Time) string { return t.UTC().Format(time.RFC1123) },
}

// Parse loads every page template.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

// MustParse is Parse for program start-up.
func MustParse() *template.Template {
	return template.Must(Parse())
}

// Base is embedded by every page.
type Base struct {
	Title string
	User  *models.User
}

type HomePage struct {
	Base
}

type JobsPage struct {
	Base
	Q           string
	EditID      string
	Form        models.JobInput
	SubmitLabel string
	Cards       []listing.Card
	Error       string
}

type DeletePage struct {
	Base
	Job models.JobPosting
	Q   string
}

type SearchPage struct {
	Base
	Keyword  string
	Location string
	Exp      string
	Cards    []listing.Card
}

type ApplyPage struct {
	Base
	Job       models.JobSnapshot
	LogoURL   string
	OpenSince time.Time
	Name      string
	Email     string
	Cover     string
	Error     string
}

type ApplyDonePage struct {
	Base
	Application *models.Application
	Confetti    bool
}

type AuthPage struct {
	Base
	Name       string
	Email      string
	Error      string
	Success    string
	RedirectTo string
	// RedirectMS delays client-side navigation after Success.
	RedirectMS int
}
