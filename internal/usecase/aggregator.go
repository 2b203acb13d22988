package usecase

import (
	"sort"

	"github.com/xcarvalho/leadtrack/internal/entity"
)

const topCompaniesLimit = 5

// Stats recomputes the aggregate view on demand. Every known status is
// present in ByStatus, zero-valued when unseen.
func (s *LeadStore) Stats() *Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := make(map[entity.LeadStatus]int, len(entity.AllLeadStatuses))
	for _, status := range entity.AllLeadStatuses {
		byStatus[status] = 0
	}

	companies := make(map[string]int)
	for _, l := range s.leads {
		byStatus[l.Status]++
		companies[l.CompanyName]++
	}

	top := make([]CompanyCount, 0, len(companies))
	for company, count := range companies {
		top = append(top, CompanyCount{Company: company, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Company < top[j].Company
	})
	if len(top) > topCompaniesLimit {
		top = top[:topCompaniesLimit]
	}

	return &Stats{
		Total:        len(s.leads),
		ByStatus:     byStatus,
		TopCompanies: top,
	}
}

// TagCounts maps each distinct tag to the number of leads carrying it,
// most used first.
func (s *LeadStore) TagCounts() []TagCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, l := range s.leads {
		for _, tag := range l.Tags {
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, TagCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
