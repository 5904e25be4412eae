package commons

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/domain"
	"github.com/varoOP/bandpix/internal/fetch"
)

const (
	fileNamespace   = "6"
	filePrefix      = "File:"
	searchLimit     = 10
	commonsFileBase = "https://commons.wikimedia.org/wiki/"
)

// Service searches the Wikimedia Commons file namespace and fetches image
// metadata for resolved file references.
type Service interface {
	SearchFile(ctx context.Context, name string) domain.FileReference
	FetchMetadata(ctx context.Context, ref domain.FileReference) (*domain.ResolvedMetadata, error)
}

type service struct {
	log        zerolog.Logger
	client     fetch.Getter
	apiURL     string
	thumbWidth int
}

type searchPage struct {
	Title string `json:"title"`
	Index *int   `json:"index"`
}

type searchResponse struct {
	Query struct {
		Pages map[string]searchPage `json:"pages"`
	} `json:"query"`
}

type metadataValue struct {
	Value string `json:"value"`
}

type imageInfoResponse struct {
	Query struct {
		Pages map[string]struct {
			ImageInfo []struct {
				ThumbURL       string                   `json:"thumburl"`
				URL            string                   `json:"url"`
				DescriptionURL string                   `json:"descriptionurl"`
				ExtMetadata    map[string]metadataValue `json:"extmetadata"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// NewService creates a Commons search and metadata service.
func NewService(log zerolog.Logger, client fetch.Getter, apiURL string, thumbWidth int) Service {
	return &service{
		log:        log.With().Str("module", "commons").Logger(),
		client:     client,
		apiURL:     apiURL,
		thumbWidth: thumbWidth,
	}
}

// SearchFile runs a full-text search for "<name> band" in the File
// namespace and returns the most plausible photograph candidate. Like the
// structured lookup, it is best-effort: failures are logged and collapse to
// "no result".
func (s *service) SearchFile(ctx context.Context, name string) domain.FileReference {
	target := s.buildURL(url.Values{
		"action":       {"query"},
		"generator":    {"search"},
		"gsrsearch":    {name + " band"},
		"gsrnamespace": {fileNamespace},
		"gsrlimit":     {strconv.Itoa(searchLimit)},
		"prop":         {"info"},
	})

	sr := &searchResponse{}
	if err := s.client.GetJSON(ctx, target, sr); err != nil {
		s.log.Debug().Err(err).Str("name", name).Msg("file search failed")
		return ""
	}

	if len(sr.Query.Pages) == 0 {
		return ""
	}

	candidates := make([]searchPage, 0, len(sr.Query.Pages))
	for _, page := range sr.Query.Pages {
		candidates = append(candidates, page)
	}

	// Native relevance order; pages without an index sort last.
	sort.SliceStable(candidates, func(i, j int) bool {
		return indexOrLast(candidates[i]) < indexOrLast(candidates[j])
	})

	chosen := candidates[0]
	for _, c := range candidates {
		if isPhotographTitle(c.Title) {
			chosen = c
			break
		}
	}

	fileName := strings.TrimPrefix(chosen.Title, filePrefix)
	s.log.Debug().Str("name", name).Str("file", fileName).Msg("search fallback selected file")
	return domain.FileReference(fileName)
}

// isPhotographTitle filters out candidates whose title signals
// non-photographic content: vector art or logo/album/cover material.
func isPhotographTitle(title string) bool {
	t := strings.ToLower(title)
	if strings.HasSuffix(t, ".svg") {
		return false
	}
	for _, marker := range []string{"logo", "album", "cover"} {
		if strings.Contains(t, marker) {
			return false
		}
	}
	return true
}

func indexOrLast(p searchPage) int {
	if p.Index == nil {
		return int(^uint(0) >> 1)
	}
	return *p.Index
}

// FetchMetadata retrieves display URL, description-page URL, license and
// credit for a file reference. It returns nil when Commons has no imageinfo
// record for the file. Unlike the lookups, transport failures here
// propagate to the caller.
func (s *service) FetchMetadata(ctx context.Context, ref domain.FileReference) (*domain.ResolvedMetadata, error) {
	fileName := string(ref)
	target := s.buildURL(url.Values{
		"action":     {"query"},
		"titles":     {filePrefix + fileName},
		"prop":       {"imageinfo"},
		"iiprop":     {"url|extmetadata"},
		"iiurlwidth": {strconv.Itoa(s.thumbWidth)},
	})

	ir := &imageInfoResponse{}
	if err := s.client.GetJSON(ctx, target, ir); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch image info for %q", fileName)
	}

	for _, page := range ir.Query.Pages {
		if len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]

		imageURL := info.ThumbURL
		if imageURL == "" {
			imageURL = info.URL
		}

		filePageURL := info.DescriptionURL
		if filePageURL == "" {
			filePageURL = commonsFileBase + filePrefix + strings.ReplaceAll(fileName, " ", "_")
		}

		meta := info.ExtMetadata
		licenseName := metaValue(meta, "LicenseShortName")
		if licenseName == "" {
			licenseName = metaValue(meta, "License")
		}

		return &domain.ResolvedMetadata{
			FileName:    fileName,
			ImageURL:    imageURL,
			FilePageURL: filePageURL,
			Credit:      creditLine(meta),
			LicenseName: licenseName,
			LicenseURL:  metaValue(meta, "LicenseUrl"),
		}, nil
	}

	return nil, nil
}

// creditLine assembles an attribution string from the first present of the
// artist, credit and attribution fields, with embedded markup stripped. An
// empty result resolves to a fixed placeholder so credit is always
// renderable.
func creditLine(meta map[string]metadataValue) string {
	for _, field := range []string{"Artist", "Credit", "Attribution"} {
		if v := stripMarkup(metaValue(meta, field)); v != "" {
			return v
		}
	}
	return domain.NoCreditPlaceholder
}

func metaValue(meta map[string]metadataValue, key string) string {
	return strings.TrimSpace(meta[key].Value)
}

func (s *service) buildURL(params url.Values) string {
	params.Set("format", "json")
	return s.apiURL + "?" + params.Encode()
}
