package models

import (
	"strings"
	"time"
)

// JobPosting is one listing in the job store. ID is assigned at creation and
// never reused; position in the stored sequence is display order only.
type JobPosting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// JobInput carries the editable fields of a posting.
type JobInput struct {
	Title    string `form:"title" json:"title"`
	Company  string `form:"company" json:"company"`
	Location string `form:"location" json:"location"`
	Role     string `form:"role" json:"role"`
}

func (j JobPosting) Input() JobInput {
	return JobInput{Title: j.Title, Company: j.Company, Location: j.Location, Role: j.Role}
}

// Snapshot copies the posting's fields for an application; it holds no
// reference back to the store.
func (j JobPosting) Snapshot() JobSnapshot {
	return JobSnapshot{Title: j.Title, Company: j.Company, Location: j.Location, Role: j.Role}
}

// SearchText is the lower-cased concatenation matched by keyword searches.
func (j JobPosting) SearchText() string {
	return strings.ToLower(j.Title + " " + j.Company + " " + j.Location + " " + j.Role)
}

// JobFilter selects postings. Keyword is matched against all four text
// fields and Location against the location field only; both must match.
// Empty terms match everything.
type JobFilter struct {
	Keyword  string
	Location string
}

func KeywordFilter(q string) JobFilter { return JobFilter{Keyword: q} }

func (f JobFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Keyword) == "" && strings.TrimSpace(f.Location) == ""
}

func (f JobFilter) Match(j JobPosting) bool {
	kw := strings.ToLower(strings.TrimSpace(f.Keyword))
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	if kw != "" && !strings.Contains(j.SearchText(), kw) {
		return false
	}
	if loc != "" && !strings.Contains(strings.ToLower(j.Location), loc) {
		return false
	}
	return true
}

// Apply returns the matching postings in their original order.
func (f JobFilter) Apply(jobs []JobPosting) []JobPosting {
	out := make([]JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}
