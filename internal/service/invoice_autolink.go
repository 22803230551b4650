package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
)

// MinLinkScore is the lowest auto-link score that links a job.
const MinLinkScore = 3

var wordPattern = regexp.MustCompile(`\w+`)

// linkWords returns the distinct lowercased words of s that are at least
// three characters long.
func linkWords(s string) map[string]bool {
	words := map[string]bool{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(s), -1) {
		if len(w) > 2 {
			words[w] = true
		}
	}
	return words
}

func sortedWords(words map[string]bool) string {
	list := make([]string, 0, len(words))
	for w := range words {
		list = append(list, w)
	}
	sort.Strings(list)
	return strings.Join(list, " ")
}

// LinkScore rates how well an invoice ship-to matches a job: two points per
// shared name word, three for an address contained either way, five when
// one sorted word set contains the other.
func LinkScore(shipToName, shipToAddress string, job *domain.Job) int {
	score := 0
	nameWords := linkWords(shipToName)
	jobWords := linkWords(job.Name)

	for w := range nameWords {
		if jobWords[w] {
			score += 2
		}
	}

	addr := strings.ToLower(strings.TrimSpace(shipToAddress))
	jobAddr := strings.ToLower(strings.TrimSpace(job.Address))
	if addr != "" && jobAddr != "" && (strings.Contains(jobAddr, addr) || strings.Contains(addr, jobAddr)) {
		score += 3
	}

	if len(nameWords) > 0 && len(jobWords) > 0 {
		ship, name := sortedWords(nameWords), sortedWords(jobWords)
		if strings.Contains(name, ship) || strings.Contains(ship, name) {
			score += 5
		}
	}
	return score
}

// BestJobMatch returns the highest-scoring job for a ship-to, or nil when
// no job reaches MinLinkScore. Ties go to the earlier job.
func BestJobMatch(shipToName, shipToAddress string, jobs []domain.Job) (*domain.Job, int) {
	if strings.TrimSpace(shipToName) == "" && strings.TrimSpace(shipToAddress) == "" {
		return nil, 0
	}
	var (
		best      *domain.Job
		bestScore int
	)
	for i := range jobs {
		if score := LinkScore(shipToName, shipToAddress, &jobs[i]); score > bestScore {
			best, bestScore = &jobs[i], score
		}
	}
	if bestScore < MinLinkScore {
		return nil, bestScore
	}
	return best, bestScore
}
