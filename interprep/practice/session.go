package practice

import (
	"slices"

	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/interprep/questions"
)

// uncompleted candidates first, then completed ones, each group in
// candidate order, truncated to limit
func SelectSession(candidates []questions.Question, completed map[int64]bool, limit int) []questions.Question {
	session := make([]questions.Question, 0, min(limit, len(candidates)))

	for _, q := range candidates {
		if len(session) == limit {
			return session
		}

		if !completed[q.ID] {
			session = append(session, q)
		}
	}

	for _, q := range candidates {
		if len(session) == limit {
			return session
		}

		if completed[q.ID] {
			session = append(session, q)
		}
	}

	return session
}

// aggregates practice history and submission counts into progress stats
func ComputeProgress(history []questions.History, statusCounts map[string]int) Progress {
	p := Progress{
		TotalPracticed: len(history),
		Topics:         make(map[string]int),
		Difficulties:   make(map[string]int),
		RecentActivity: []Activity{},
	}

	for _, h := range history {
		if h.Completed {
			p.TotalCompleted++
		}

		if h.Topic != "" {
			p.Topics[h.Topic]++
		}

		if h.Difficulty != "" {
			p.Difficulties[h.Difficulty]++
		}
	}

	for _, n := range statusCounts {
		p.TotalSubmissions += n
	}

	p.SuccessfulSubmissions = statusCounts[generator.StatusAccepted]
	p.CompletionRate = rate(p.TotalCompleted, p.TotalPracticed)
	p.SuccessRate = rate(p.SuccessfulSubmissions, p.TotalSubmissions)

	recent := slices.Clone(history)
	slices.SortStableFunc(recent, func(a, b questions.History) int {
		return b.LastPracticed.Compare(a.LastPracticed)
	})

	for _, h := range recent[:min(recentLimit, len(recent))] {
		p.RecentActivity = append(p.RecentActivity, Activity{
			QuestionID:    h.QuestionID,
			Title:         h.Title,
			Completed:     h.Completed,
			LastPracticed: h.LastPracticed,
			Attempts:      h.Attempts,
		})
	}

	return p
}

func completedSet(history []questions.History) map[int64]bool {
	set := make(map[int64]bool)

	for _, h := range history {
		if h.Completed {
			set[h.QuestionID] = true
		}
	}

	return set
}

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(n) / float64(total)
}
