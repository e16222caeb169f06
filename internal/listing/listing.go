// Package listing turns job postings into display cards.
package listing

import (
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/yoockh/jobboard/internal/models"
)

const (
	logoBase = "https://img.logo.dev/name/"

	// DefaultLogoToken is the publishable logo.dev token.
	DefaultLogoToken = "pk_LoVhOGmeSIStfZajPMuB_g"

	EmptyMessage = "No jobs found."
)

var slugDrop = regexp.MustCompile(`[^a-z0-9-]`)

// isSpace is the browser's whitespace class: Unicode White_Space minus
// U+0085, plus the byte order mark.
func isSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

// Slugify lower-cases company, joins words with "-" and drops anything
// outside [a-z0-9-].
func Slugify(company string) string {
	words := strings.FieldsFunc(strings.ToLower(company), isSpace)
	return slugDrop.ReplaceAllString(strings.Join(words, "-"), "")
}

// LogoURL returns the logo lookup URL for company, or "" when there is
// nothing to look up.
func LogoURL(company, token string) string {
	slug := Slugify(company)
	if slug == "" {
		return ""
	}
	u := logoBase + url.PathEscape(slug)
	if token != "" {
		u += "?token=" + url.QueryEscape(token)
	}
	return u
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML neutralizes markup in s for element or quoted attribute
// content.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

type Card struct {
	ID       string
	Title    string
	Company  string
	Location string
	Role     string
	LogoURL  string
	ApplyURL string
	EditURL  string
	// DeleteURL leads to the confirmation page.
	DeleteURL string
}

// Build returns one card per matching job in stored order. q is the
// current list filter, carried on edit and delete links.
func Build(jobs []models.JobPosting, filter models.JobFilter, logoToken string) []Card {
	q := filter.Keyword
	cards := make([]Card, 0, len(jobs))
	for _, j := range jobs {
		if !filter.Match(j) {
			continue
		}
		cards = append(cards, Card{
			ID:        j.ID,
			Title:     j.Title,
			Company:   j.Company,
			Location:  j.Location,
			Role:      j.Role,
			LogoURL:   LogoURL(j.Company, logoToken),
			ApplyURL:  ApplyURL(j.Snapshot()),
			EditURL:   "/jobs?" + url.Values{"edit": {j.ID}, "q": {q}}.Encode(),
			DeleteURL: "/jobs/" + url.PathEscape(j.ID) + "/delete?" + url.Values{"q": {q}}.Encode(),
		})
	}
	return cards
}

// ReadOnly drops the edit and delete links, leaving Apply as the only action.
func ReadOnly(cards []Card) []Card {
	for i := range cards {
		cards[i].EditURL = ""
		cards[i].DeleteURL = ""
	}
	return cards
}

// ApplyURL links to the application page for a job snapshot.
func ApplyURL(s models.JobSnapshot) string {
	v := url.Values{}
	v.Set("title", s.Title)
	v.Set("company", s.Company)
	v.Set("location", s.Location)
	v.Set("role", s.Role)
	return "/apply?" + v.Encode()
}

// RenderFragment writes the card list markup used by live search.
func RenderFragment(w io.Writer, cards []Card) error {
	if len(cards) == 0 {
		_, err := io.WriteString(w, `<p class="empty">`+EmptyMessage+`</p>`)
		return err
	}
	var b strings.Builder
	b.WriteString(`<ul class="job-list">`)
	for _, c := range cards {
		b.WriteString(`<li class="job-card">`)
		if c.LogoURL != "" {
			b.WriteString(`<img class="logo" src="` + EscapeHTML(c.LogoURL) + `" alt="` + EscapeHTML(c.Company) + ` logo" onerror="this.style.display='none'">`)
		}
		b.WriteString(`<div class="job-info"><h3>` + EscapeHTML(c.Title) + `</h3>`)
		b.WriteString(`<p class="company">` + EscapeHTML(c.Company) + `</p>`)
		b.WriteString(`<p class="location">` + EscapeHTML(c.Location) + `</p>`)
		b.WriteString(`<p class="role">` + EscapeHTML(c.Role) + `</p></div>`)
		b.WriteString(`<div class="job-actions">`)
		b.WriteString(`<a class="apply" href="` + EscapeHTML(c.ApplyURL) + `" target="_blank" rel="noopener">Apply</a>`)
		if c.EditURL != "" {
			b.WriteString(`<a class="edit" href="` + EscapeHTML(c.EditURL) + `">Edit</a>`)
		}
		if c.DeleteURL != "" {
			b.WriteString(`<a class="delete" href="` + EscapeHTML(c.DeleteURL) + `">Delete</a>`)
		}
		b.WriteString(`</div></li>`)
	}
	b.WriteString(`</ul>`)
	_, err := io.WriteString(w, b.String())
	return err
}
