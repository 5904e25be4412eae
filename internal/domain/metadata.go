package domain

// FileReference is an opaque file name within the media repository's File
// namespace. It bridges the lookup stages and the metadata fetch; an empty
// reference means "no file found".
type FileReference string

// NoCreditPlaceholder substitutes for an empty attribution string so that
// Credit is always renderable text.
const NoCreditPlaceholder = "No author information available"

// ResolvedMetadata holds the display and attribution fields extracted for a
// file reference. Credit and LicenseName are always non-empty (fallback text
// is substituted when source data is absent). An empty ImageURL signals that
// the file has no usable rendition and the caller must treat the resolution
// as failed.
type ResolvedMetadata struct {
	FileName    string
	ImageURL    string
	FilePageURL string
	Credit      string
	LicenseName string
	LicenseURL  string
}
