package vacancy

// Vacancy is a single job posting pulled from a search-results page.
type Vacancy struct {
	Title    string `json:"title"`
	Employer string `json:"employer"`
	Link     string `json:"link"`
}

// Key is the identity triple used for in-run deduplication.
type Key struct {
	Title    string
	Employer string
	Link     string
}

func (v Vacancy) Key() Key {
	return Key{Title: v.Title, Employer: v.Employer, Link: v.Link}
}
