package domain

import "time"

// CacheEntry is the persisted resolution result for a single band.
// Exactly one of the two shapes is valid: a success entry carries a
// non-empty ImageURL, an absence entry carries Missing = true. An entry,
// once written, is terminal until the cache is explicitly cleared.
type CacheEntry struct {
	Name string `json:"name"`
	Year int    `json:"year,omitempty"`

	// Success fields.
	ImageURL    string `json:"imageUrl,omitempty"`
	FilePageURL string `json:"filePageUrl,omitempty"`
	Credit      string `json:"credit,omitempty"`
	LicenseName string `json:"licenseName,omitempty"`
	LicenseURL  string `json:"licenseUrl,omitempty"`

	// FileName is set on success, and on absence entries where a file
	// reference was found but its metadata yielded no usable image.
	FileName string `json:"fileName,omitempty"`

	// Missing marks a confirmed-absent resolution: lookup was attempted
	// and definitively produced no usable image.
	Missing bool `json:"missing,omitempty"`

	// FetchedAt records when resolution happened. Reserved for a future
	// staleness policy; nothing reads it today.
	FetchedAt time.Time `json:"fetchedAt"`
}

// Resolved reports whether the entry is a terminal cache hit, either a
// success or a confirmed absence.
func (e CacheEntry) Resolved() bool {
	return e.ImageURL != "" || e.Missing
}
