package entity

// CohortCell counts distinct customers of a cohort active in a given period.
type CohortCell struct {
	Cohort    string `json:"cohort"`
	Activity  string `json:"activity"`
	Customers int    `json:"customers"`
}

// CohortMatrix is a sparse (cohort, activity) matrix. Cells are ordered by cohort, then by
// activity period; pairs without activity are absent.
type CohortMatrix struct {
	Cohorts []string     `json:"cohorts"`
	Periods []string     `json:"periods"`
	Cells   []CohortCell `json:"cells"`
}

// Lookup returns the number of customers for a cell and whether the cell exists.
func (m CohortMatrix) Lookup(cohort, activity string) (int, bool) {
	for _, c := range m.Cells {
		if c.Cohort == cohort && c.Activity == activity {
			return c.Customers, true
		}
	}
	return 0, false
}

// IsEmpty reports whether the matrix has no cells.
func (m CohortMatrix) IsEmpty() bool {
	return len(m.Cells) == 0
}
