package render

import (
	"html/template"
	"strings"

	"github.com/varoOP/bandpix/internal/domain"
)

// itemTemplate renders one result list item. html/template escapes every
// metadata field, which frequently contains user-authored attribution text.
var itemTemplate = template.Must(template.New("item").Parse(strings.TrimSpace(`
<li class="band">
  <figure>
    <img src="{{.ImageURL}}" alt="{{.Name}}">
    <figcaption>
      <span class="name">{{.Name}}{{if .Year}} ({{.Year}}){{end}}</span>
      <span class="credit">{{.Credit}}</span>
      {{if .LicenseURL}}<a class="license" href="{{.LicenseURL}}">{{.LicenseName}}</a>{{else}}<span class="license">{{.LicenseName}}</span>{{end}}
      <a class="source" href="{{.FilePageURL}}">source</a>
    </figcaption>
  </figure>
</li>`)))

var missingTemplate = template.Must(template.New("missing").Parse(strings.TrimSpace(`
<li class="band band-missing">
  <span class="name">{{.Name}}{{if .Year}} ({{.Year}}){{end}}</span>
  <span class="notice">No freely licensed image found</span>
</li>`)))

type itemData struct {
	Name        string
	Year        int
	ImageURL    string
	FilePageURL string
	Credit      string
	LicenseName string
	LicenseURL  string
}

// ListItem renders a presentational HTML list item for a resolution result.
// A nil or absence entry renders the distinct not-found variant.
func ListItem(entry *domain.CacheEntry, name string, year int) (string, error) {
	data := itemData{Name: name, Year: year}

	var b strings.Builder
	if entry == nil || entry.ImageURL == "" {
		if err := missingTemplate.Execute(&b, data); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	data.ImageURL = entry.ImageURL
	data.FilePageURL = entry.FilePageURL
	data.Credit = entry.Credit
	data.LicenseName = entry.LicenseName
	data.LicenseURL = entry.LicenseURL

	if err := itemTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
