package chatbot

import (
	"regexp"
	"sort"
	"strings"
)

type navEntry struct {
	label string
	path  string
}

// navSections maps the phrases users type to client routes. Order matters:
// partial matching returns the first entry that overlaps the request.
var navSections = []navEntry{
	{"dashboard", "/dashboard"},
	{"materials", "/materials"},
	{"projects", "/projects"},
	{"schedule", "/schedule"},
	{"bids", "/bids"},
	{"pay apps", "/payapps"},
	{"payapps", "/payapps"},
	{"pay applications", "/payapps"},
	{"rfis", "/rfis"},
	{"rfi", "/rfis"},
	{"change orders", "/change-orders"},
	{"change order", "/change-orders"},
	{"cos", "/change-orders"},
	{"submittals", "/submittals"},
	{"submittal", "/submittals"},
	{"documents", "/documents"},
	{"closeout", "/documents"},
	{"docs", "/documents"},
	{"accounting", "/accounting"},
	{"expenses", "/expenses"},
	{"recurring expenses", "/expenses"},
	{"payroll", "/payroll"},
	{"licenses", "/licenses"},
	{"license", "/licenses"},
	{"time entry", "/time-entry"},
	{"time", "/time-entry"},
	{"timesheet", "/time-entry"},
	{"timesheets", "/time-entry"},
	{"warranty", "/warranty"},
	{"warranties", "/warranty"},
	{"service calls", "/service-calls"},
	{"service call", "/service-calls"},
	{"howtos", "/howtos"},
	{"how tos", "/howtos"},
	{"how to", "/howtos"},
	{"how-tos", "/howtos"},
	{"code books", "/codebooks"},
	{"codebooks", "/codebooks"},
	{"codes", "/codebooks"},
	{"manuals", "/manuals"},
	{"equipment manuals", "/manuals"},
	{"chat", "/chatbot"},
	{"chatbot", "/chatbot"},
	{"user management", "/admin/users"},
	{"users", "/admin/users"},
	{"admin", "/admin/users"},
}

var navPrefix = regexp.MustCompile(`(?i)^(go\s+to|take\s+me\s+to|open|navigate\s+to|show\s+me|bring\s+up|pull\s+up|switch\s+to)\s+`)

// ResolveNavTarget strips a navigation verb from msg and looks the rest up
// in the section map, exact match first, then the first partial overlap.
// It returns empty strings when nothing matches.
func ResolveNavTarget(msg string) (label, path string) {
	clean := strings.TrimSpace(navPrefix.ReplaceAllString(strings.TrimSpace(msg), ""))
	clean = strings.TrimRight(clean, "?.,!")
	lower := strings.ToLower(clean)

	for _, e := range navSections {
		if e.label == lower {
			return e.label, e.path
		}
	}
	for _, e := range navSections {
		if strings.Contains(lower, e.label) || strings.Contains(e.label, lower) {
			return e.label, e.path
		}
	}
	return "", ""
}

// NavPaths returns every distinct client route, sorted.
func NavPaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range navSections {
		if !seen[e.path] {
			seen[e.path] = true
			out = append(out, e.path)
		}
	}
	sort.Strings(out)
	return out
}

func navLabels() []string {
	out := make([]string, 0, len(navSections))
	for _, e := range navSections {
		out = append(out, e.label)
	}
	sort.Strings(out)
	return out
}
