package learning

import (
	"cmp"
	"slices"
)

const recentActivityLimit = 5

// orders every topic by category then topic order and marks the user's status
func BuildPath(s *Snapshot) Path {
	byTopic := progressByTopic(s.Progress)
	path := Path{Categories: make([]PathCategory, 0, len(s.Categories))}

	for _, c := range sortedCategories(s.Categories) {
		pc := PathCategory{Category: c, Topics: []PathTopic{}}

		for _, t := range topicsOf(s.Topics, c.ID) {
			pt := PathTopic{Topic: t, Status: StatusNotStarted}

			if p, ok := byTopic[t.ID]; ok {
				pt.ProgressPercentage = p.ProgressPercentage
				pt.Status = status(p)
			}

			if path.NextTopicID == 0 && pt.Status != StatusCompleted {
				path.NextTopicID = t.ID
			}

			pc.Topics = append(pc.Topics, pt)
		}

		path.Categories = append(path.Categories, pc)
	}

	return path
}

func ComputeStats(s *Snapshot) Stats {
	byTopic := progressByTopic(s.Progress)
	stats := Stats{
		TotalTopics:      len(s.Topics),
		CategoryProgress: []CategoryProgress{},
		RecentActivity:   []Activity{},
	}

	for _, t := range s.Topics {
		if p, ok := byTopic[t.ID]; ok && p.Completed {
			stats.CompletedTopics++
		}
	}

	stats.OverallProgress = ratio(stats.CompletedTopics, stats.TotalTopics)

	for _, c := range sortedCategories(s.Categories) {
		cp := CategoryProgress{CategoryID: c.ID, Name: c.Name}

		for _, t := range topicsOf(s.Topics, c.ID) {
			cp.TotalTopics++

			if p, ok := byTopic[t.ID]; ok && p.Completed {
				cp.CompletedTopics++
			}
		}

		cp.Progress = ratio(cp.CompletedTopics, cp.TotalTopics)
		stats.CategoryProgress = append(stats.CategoryProgress, cp)
	}

	topics := make(map[int64]Topic, len(s.Topics))
	for _, t := range s.Topics {
		topics[t.ID] = t
	}

	categories := make(map[int64]Category, len(s.Categories))
	for _, c := range s.Categories {
		categories[c.ID] = c
	}

	recent := slices.Clone(s.Progress)
	slices.SortStableFunc(recent, func(a, b Progress) int {
		return b.LastAccessed.Compare(a.LastAccessed)
	})

	for _, p := range recent {
		if len(stats.RecentActivity) == recentActivityLimit {
			break
		}

		t, ok := topics[p.TopicID]
		if !ok {
			continue
		}

		stats.RecentActivity = append(stats.RecentActivity, Activity{
			TopicID:            t.ID,
			TopicName:          t.Name,
			CategoryName:       categories[t.CategoryID].Name,
			ProgressPercentage: p.ProgressPercentage,
			Completed:          p.Completed,
			LastAccessed:       p.LastAccessed,
		})
	}

	return stats
}

// suggests up to limit topics: started ones first, then the next unstarted
// topics in path order. completed topics are never suggested.
func Recommend(s *Snapshot, limit int) []Recommendation {
	recs := []Recommendation{}
	if limit <= 0 {
		return recs
	}

	path := BuildPath(s)

	var started, fresh []Recommendation

	for _, c := range path.Categories {
		for _, t := range c.Topics {
			switch t.Status {
			case StatusInProgress:
				started = append(started, Recommendation{
					TopicID:      t.ID,
					Name:         t.Name,
					CategoryName: c.Name,
					Reason:       "continue where you left off",
				})
			case StatusNotStarted:
				fresh = append(fresh, Recommendation{
					TopicID:      t.ID,
					Name:         t.Name,
					CategoryName: c.Name,
					Reason:       "next in your learning path",
				})
			}
		}
	}

	recs = append(recs, started...)
	recs = append(recs, fresh...)

	if len(recs) > limit {
		recs = recs[:limit]
	}

	return recs
}

func status(p Progress) string {
	switch {
	case p.Completed:
		return StatusCompleted
	case p.ProgressPercentage > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

func progressByTopic(progress []Progress) map[int64]Progress {
	m := make(map[int64]Progress, len(progress))
	for _, p := range progress {
		m[p.TopicID] = p
	}

	return m
}

func sortedCategories(categories []Category) []Category {
	sorted := slices.Clone(categories)
	slices.SortStableFunc(sorted, func(a, b Category) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
	})

	return sorted
}

func topicsOf(topics []Topic, categoryID int64) []Topic {
	var out []Topic

	for _, t := range topics {
		if t.CategoryID == categoryID {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b Topic) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
	})

	return out
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(n) / float64(total)
}
