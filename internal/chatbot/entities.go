package chatbot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	gcPatterns = patterns(
		`(?i)(?:bids?\s+(?:to|for|sent\s+to|submitted\s+to))\s+(.+?)(?:\?|$|\.)`,
		`(?i)(?:to|for|from)\s+([a-z][a-z\s&'.]+?)(?:\?|$|\.)`,
	)
	jobPatterns = patterns(
		`(?i)(?:profit|revenue|margin|financial|earnings)\s+(?:for|on)\s+(.+?)(?:\?|$|\.)`,
		`(?i)(?:job|project)\s+(.+?)(?:\?|$|\.|\s+status)`,
	)
	employeePatterns = patterns(
		`(?i)hours?\s+(?:for|by)\s+(.+?)(?:\?|$|\.)`,
		`(?i)time\s+(?:for|by)\s+(.+?)(?:\?|$|\.)`,
	)

	gcStopwords       = map[string]bool{"the": true, "all": true, "our": true, "this": true, "last": true, "next": true}
	employeeStopwords = map[string]bool{"me": true, "myself": true, "this": true, "last": true, "next": true}

	reLastMonth   = regexp.MustCompile(`(?i)last\s+month`)
	reThisMonth   = regexp.MustCompile(`(?i)this\s+month`)
	reLastWeek    = regexp.MustCompile(`(?i)last\s+week`)
	reThisWeek    = regexp.MustCompile(`(?i)this\s+week`)
	reDueThisWeek = regexp.MustCompile(`(?i)due\s+this\s+week`)
	reQuarter     = regexp.MustCompile(`(?i)q([1-4])\s*(\d{4})`)
	reYear        = regexp.MustCompile(`\b(20\d{2})\b`)
	reLastNDays   = regexp.MustCompile(`(?i)last\s+(\d+)\s+days?`)
	reRecent      = regexp.MustCompile(`(?i)\b(recent|latest|newest)\b`)

	reBidPrefix   = regexp.MustCompile(`(?i)^(bid|show|find|look\s*up)\s+`)
	reBidSuffix   = regexp.MustCompile(`(?i)\s*(summary|details?|info)\s*`)
	reHowtoPrefix = regexp.MustCompile(`(?i)^(howto|how[\s-]*to)\s+`)
	reHowdoPrefix = regexp.MustCompile(`(?i)^how\s+(do\s+)?(i|you|we)\s+`)
	reWarrantyOps = regexp.MustCompile(`(?i)\b(warranty|status|check|items?|show|list)\b`)

	codePrefixes = []string{
		"search code", "code search", "find code", "look up code",
		"lookup code", "code lookup", "code section", "building code",
	}
)

func cleanName(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "?.,!")
}

func firstCapture(res []*regexp.Regexp, msg string, accept func(string) bool) string {
	for _, re := range res {
		m := re.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		name := cleanName(m[1])
		if accept(name) {
			return name
		}
	}
	return ""
}

// ExtractGCName pulls a general contractor name from phrases like
// "bids to Acme Builders".
func ExtractGCName(msg string) string {
	return firstCapture(gcPatterns, msg, func(name string) bool {
		return len(name) > 2 && !gcStopwords[strings.ToLower(name)]
	})
}

// ExtractJobName pulls a job name from phrases like "profit for Sunrise".
func ExtractJobName(msg string) string {
	return firstCapture(jobPatterns, msg, func(name string) bool {
		return len(name) > 1
	})
}

// ExtractEmployeeName pulls a person from phrases like "hours for Sam".
func ExtractEmployeeName(msg string) string {
	return firstCapture(employeePatterns, msg, func(name string) bool {
		return len(name) > 1 && !employeeStopwords[strings.ToLower(name)]
	})
}

// ExtractBidSearch strips lookup verbs and detail words from a bid query.
func ExtractBidSearch(msg string) string {
	clean := reBidPrefix.ReplaceAllString(strings.TrimSpace(msg), "")
	return strings.TrimSpace(reBidSuffix.ReplaceAllString(clean, ""))
}

// ExtractCodeQuery removes code-search verbs from msg.
func ExtractCodeQuery(msg string) string {
	clean := strings.ToLower(msg)
	for _, p := range codePrefixes {
		clean = strings.ReplaceAll(clean, p, "")
	}
	return strings.TrimSpace(clean)
}

// ExtractHowtoQuery turns "how do I install a mini split" into
// "install a mini split".
func ExtractHowtoQuery(msg string) string {
	clean := reHowtoPrefix.ReplaceAllString(msg, "")
	clean = reHowdoPrefix.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

func extractWarrantyQuery(msg string) string {
	return strings.TrimSpace(reWarrantyOps.ReplaceAllString(msg, ""))
}

// DateRange is an inclusive pair of YYYY-MM-DD dates.
type DateRange struct {
	Start string
	End   string
}

// weekday returns days since Monday.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ExtractDateRange resolves relative date phrases against now. The first
// phrase that matches wins, in this order: last month, this month, last
// week, due this week (Monday to Sunday), this week (Monday to today),
// Qn YYYY, a bare year, last N days, and recent (the last 30 days).
func ExtractDateRange(msg string, now time.Time) (DateRange, bool) {
	today := startOfDay(now)
	span := func(a, b time.Time) (DateRange, bool) {
		return DateRange{Start: a.Format(dateLayout), End: b.Format(dateLayout)}, true
	}
	firstOfMonth := today.AddDate(0, 0, 1-today.Day())

	switch {
	case reLastMonth.MatchString(msg):
		last := firstOfMonth.AddDate(0, 0, -1)
		return span(last.AddDate(0, 0, 1-last.Day()), last)
	case reThisMonth.MatchString(msg):
		return span(firstOfMonth, today)
	case reLastWeek.MatchString(msg):
		end := today.AddDate(0, 0, -(weekday(today) + 1))
		return span(end.AddDate(0, 0, -6), end)
	case reDueThisWeek.MatchString(msg):
		start := today.AddDate(0, 0, -weekday(today))
		return span(start, start.AddDate(0, 0, 6))
	case reThisWeek.MatchString(msg):
		return span(today.AddDate(0, 0, -weekday(today)), today)
	}

	if m := reQuarter.FindStringSubmatch(msg); m != nil {
		q, _ := strconv.Atoi(m[1])
		starts := [...]string{"", "01-01", "04-01", "07-01", "10-01"}
		ends := [...]string{"", "03-31", "06-30", "09-30", "12-31"}
		return DateRange{Start: fmt.Sprintf("%s-%s", m[2], starts[q]), End: fmt.Sprintf("%s-%s", m[2], ends[q])}, true
	}
	if m := reYear.FindStringSubmatch(msg); m != nil {
		return DateRange{Start: m[1] + "-01-01", End: m[1] + "-12-31"}, true
	}
	if m := reLastNDays.FindStringSubmatch(msg); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil {
			return span(today.AddDate(0, 0, -days), today)
		}
	}
	if reRecent.MatchString(msg) {
		return span(today.AddDate(0, 0, -30), today)
	}
	return DateRange{}, false
}

// currentWeek is Monday through today.
func currentWeek(now time.Time) DateRange {
	today := startOfDay(now)
	return DateRange{
		Start: today.AddDate(0, 0, -weekday(today)).Format(dateLayout),
		End:   today.Format(dateLayout),
	}
}
