package domain

// Band identifies an entity to resolve: a musical act and the year it is
// associated with in the caller's list (formation year, chart year, etc.).
type Band struct {
	Name string `json:"name"`
	Year int    `json:"year,omitempty"`
}

// Favorite is one record of the user-maintained favorites list. Img is
// patched in place when a fresh resolution disagrees with the stored URL.
type Favorite struct {
	Name string `json:"name"`
	Img  string `json:"img"`
	Year int    `json:"year,omitempty"`
}

// Statistics summarizes a batch run.
type Statistics struct {
	Total           int
	Resolved        int
	Missing         int
	Failed          int
	FromCache       int
	CoveragePercent float64
}
