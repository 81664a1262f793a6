package pipeline

import (
	"sort"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
)

// CohortMatrix counts, for every observed (cohort, activity) pair, the distinct customers
// whose first period is cohort and who bought during activity. Rows without a customer
// are ignored.
func CohortMatrix(c Cleaned) entity.CohortMatrix {
	firstSeen := make(map[string]string)
	for r := range c.All() {
		if !r.HasCustomer() {
			continue
		}
		if p, ok := firstSeen[r.CustomerID]; !ok || r.PeriodKey < p {
			firstSeen[r.CustomerID] = r.PeriodKey
		}
	}

	type cellKey struct{ cohort, activity string }
	cells := make(map[cellKey]map[string]struct{})
	cohorts := make(map[string]struct{})
	periods := make(map[string]struct{})
	for r := range c.All() {
		if !r.HasCustomer() {
			continue
		}
		k := cellKey{cohort: firstSeen[r.CustomerID], activity: r.PeriodKey}
		set, ok := cells[k]
		if !ok {
			set = make(map[string]struct{})
			cells[k] = set
		}
		set[r.CustomerID] = struct{}{}
		cohorts[k.cohort] = struct{}{}
		periods[k.activity] = struct{}{}
	}

	m := entity.CohortMatrix{
		Cohorts: sortedKeys(cohorts),
		Periods: sortedKeys(periods),
		Cells:   make([]entity.CohortCell, 0, len(cells)),
	}
	for k, set := range cells {
		m.Cells = append(m.Cells, entity.CohortCell{Cohort: k.cohort, Activity: k.activity, Customers: len(set)})
	}
	sort.Slice(m.Cells, func(i, j int) bool {
		if m.Cells[i].Cohort != m.Cells[j].Cohort {
			return m.Cells[i].Cohort < m.Cells[j].Cohort
		}
		return m.Cells[i].Activity < m.Cells[j].Activity
	})
	return m
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
