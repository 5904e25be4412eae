package wikidata

import (
	"context"
	"net/url"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/domain"
	"github.com/varoOP/bandpix/internal/fetch"
)

const (
	searchLimit   = 5
	imageProperty = "P18"
)

// relevantDescription matches candidate descriptions that indicate a
// musical act, used to disambiguate between same-named entities.
var relevantDescription = regexp.MustCompile(`(?i)\b(band|rock|group|musician|musical)`)

// Service looks up a representative image file reference for a band in the
// Wikidata structured graph.
type Service interface {
	FindImage(ctx context.Context, name string) domain.FileReference
}

type service struct {
	log    zerolog.Logger
	client fetch.Getter
	apiURL string
}

type searchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
}

type claimsResponse struct {
	Claims map[string][]struct {
		Mainsnak struct {
			Datavalue struct {
				Value any `json:"value"`
			} `json:"datavalue"`
		} `json:"mainsnak"`
	} `json:"claims"`
}

// NewService creates a Wikidata lookup service.
func NewService(log zerolog.Logger, client fetch.Getter, apiURL string) Service {
	return &service{
		log:    log.With().Str("module", "wikidata").Logger(),
		client: client,
		apiURL: apiURL,
	}
}

// FindImage searches the entity index for name, picks the best-matching
// candidate and returns the value of its image property's first statement.
// The lookup is best-effort: any transport failure is logged and treated as
// "no result", never surfaced to the pipeline.
func (s *service) FindImage(ctx context.Context, name string) domain.FileReference {
	entityID := s.searchEntity(ctx, name)
	if entityID == "" {
		return ""
	}

	return s.imageClaim(ctx, entityID)
}

func (s *service) searchEntity(ctx context.Context, name string) string {
	target := s.buildURL(url.Values{
		"action":   {"wbsearchentities"},
		"search":   {name},
		"language": {"en"},
		"limit":    {strconv.Itoa(searchLimit)},
	})

	sr := &searchResponse{}
	if err := s.client.GetJSON(ctx, target, sr); err != nil {
		s.log.Debug().Err(err).Str("name", name).Msg("entity search failed")
		return ""
	}

	if len(sr.Search) == 0 {
		return ""
	}

	// Prefer the first candidate described as a musical act; same-named
	// entities (places, films) often rank above the band itself.
	for _, candidate := range sr.Search {
		if relevantDescription.MatchString(candidate.Description) {
			return candidate.ID
		}
	}

	return sr.Search[0].ID
}

func (s *service) imageClaim(ctx context.Context, entityID string) domain.FileReference {
	target := s.buildURL(url.Values{
		"action":   {"wbgetclaims"},
		"entity":   {entityID},
		"property": {imageProperty},
	})

	cr := &claimsResponse{}
	if err := s.client.GetJSON(ctx, target, cr); err != nil {
		s.log.Debug().Err(err).Str("entity", entityID).Msg("claims fetch failed")
		return ""
	}

	statements, ok := cr.Claims[imageProperty]
	if !ok || len(statements) == 0 {
		return ""
	}

	fileName, ok := statements[0].Mainsnak.Datavalue.Value.(string)
	if !ok || fileName == "" {
		return ""
	}

	s.log.Debug().Str("entity", entityID).Str("file", fileName).Msg("image claim found")
	return domain.FileReference(fileName)
}

func (s *service) buildURL(params url.Values) string {
	params.Set("format", "json")
	return s.apiURL + "?" + params.Encode()
}
