package commons_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/commons"
	"github.com/varoOP/bandpix/internal/domain"
)

type fakeGetter struct {
	responses map[string]string
	calls     int
}

func (f *fakeGetter) GetJSON(ctx context.Context, url string, v any) error {
	f.calls++
	for key, body := range f.responses {
		if strings.Contains(url, key) {
			return json.Unmarshal([]byte(body), v)
		}
	}
	return fmt.Errorf("no canned response for %s", url)
}

func newService(g *fakeGetter) commons.Service {
	return commons.NewService(zerolog.Nop(), g, "https://commons.test/w/api.php", 500)
}

func TestSearchFileSkipsLogosAndVectorArt(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"generator=search": `{"query":{"pages":{
			"1":{"title":"File:Slayer logo.svg","index":1},
			"2":{"title":"File:Slayer album cover.jpg","index":2},
			"3":{"title":"File:Slayer live in 2019.jpg","index":3}}}}`,
	}}

	ref := newService(g).SearchFile(context.Background(), "Slayer")
	if string(ref) != "Slayer live in 2019.jpg" {
		t.Fatalf("got %q, want the photograph candidate", ref)
	}
}

func TestSearchFileOrdersByRelevanceIndex(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"generator=search": `{"query":{"pages":{
			"9":{"title":"File:Later concert.jpg","index":7},
			"4":{"title":"File:Best match.jpg","index":1},
			"5":{"title":"File:No index.jpg"}}}}`,
	}}

	ref := newService(g).SearchFile(context.Background(), "whoever")
	if string(ref) != "Best match.jpg" {
		t.Fatalf("got %q, want the lowest-index candidate", ref)
	}
}

func TestSearchFileFallsBackToFirstRawCandidate(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"generator=search": `{"query":{"pages":{
			"1":{"title":"File:Band logo.svg","index":1},
			"2":{"title":"File:Album cover art.png","index":2}}}}`,
	}}

	// Every candidate is filtered; the first by relevance is still used.
	ref := newService(g).SearchFile(context.Background(), "whoever")
	if string(ref) != "Band logo.svg" {
		t.Fatalf("got %q, want first raw candidate", ref)
	}
}

func TestSearchFileNoResults(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"generator=search": `{"query":{"pages":{}}}`,
	}}

	if ref := newService(g).SearchFile(context.Background(), "zzzz"); ref != "" {
		t.Fatalf("expected empty reference, got %q", ref)
	}
}

func TestSearchFileSwallowsTransportErrors(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{}}

	if ref := newService(g).SearchFile(context.Background(), "anything"); ref != "" {
		t.Fatalf("expected empty reference on transport failure, got %q", ref)
	}
}

func TestFetchMetadataPrefersThumbnail(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"prop=imageinfo": `{"query":{"pages":{"42":{"imageinfo":[{
			"thumburl":"https://upload.test/thumb/X.jpg/500px-X.jpg",
			"url":"https://upload.test/X.jpg",
			"descriptionurl":"https://commons.test/wiki/File:X.jpg",
			"extmetadata":{
				"Artist":{"value":"<a href=\"https://example.test/jane\">Jane Doe</a>"},
				"LicenseShortName":{"value":"CC BY-SA 4.0"},
				"LicenseUrl":{"value":"https://creativecommons.org/licenses/by-sa/4.0"}}}]}}}}`,
	}}

	meta, err := newService(g).FetchMetadata(context.Background(), domain.FileReference("X.jpg"))
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if meta == nil {
		t.Fatal("expected metadata record")
	}
	if meta.ImageURL != "https://upload.test/thumb/X.jpg/500px-X.jpg" {
		t.Fatalf("unexpected image url: %q", meta.ImageURL)
	}
	if meta.FilePageURL != "https://commons.test/wiki/File:X.jpg" {
		t.Fatalf("unexpected file page url: %q", meta.FilePageURL)
	}
	if meta.Credit != "Jane Doe" {
		t.Fatalf("expected markup-stripped credit, got %q", meta.Credit)
	}
	if meta.LicenseName != "CC BY-SA 4.0" {
		t.Fatalf("unexpected license: %q", meta.LicenseName)
	}
}

func TestFetchMetadataConstructsFilePageURL(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"prop=imageinfo": `{"query":{"pages":{"42":{"imageinfo":[{
			"url":"https://upload.test/My band.jpg",
			"extmetadata":{}}]}}}}`,
	}}

	meta, err := newService(g).FetchMetadata(context.Background(), domain.FileReference("My band.jpg"))
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	want := "https://commons.wikimedia.org/wiki/File:My_band.jpg"
	if meta.FilePageURL != want {
		t.Fatalf("got %q, want %q", meta.FilePageURL, want)
	}
	if meta.ImageURL != "https://upload.test/My band.jpg" {
		t.Fatalf("expected fallback to original url, got %q", meta.ImageURL)
	}
}

func TestFetchMetadataPlaceholderCredit(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"prop=imageinfo": `{"query":{"pages":{"42":{"imageinfo":[{
			"thumburl":"https://upload.test/t.jpg",
			"extmetadata":{"LicenseShortName":{"value":"Public domain"}}}]}}}}`,
	}}

	meta, err := newService(g).FetchMetadata(context.Background(), domain.FileReference("t.jpg"))
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if meta.Credit != domain.NoCreditPlaceholder {
		t.Fatalf("got credit %q, want placeholder", meta.Credit)
	}
}

func TestFetchMetadataLicenseFallsBackToFullName(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"prop=imageinfo": `{"query":{"pages":{"42":{"imageinfo":[{
			"thumburl":"https://upload.test/t.jpg",
			"extmetadata":{"License":{"value":"cc-by-sa-3.0"}}}]}}}}`,
	}}

	meta, err := newService(g).FetchMetadata(context.Background(), domain.FileReference("t.jpg"))
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if meta.LicenseName != "cc-by-sa-3.0" {
		t.Fatalf("got license %q, want full-name fallback", meta.LicenseName)
	}
}

func TestFetchMetadataNoImageInfo(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{
		"prop=imageinfo": `{"query":{"pages":{"-1":{}}}}`,
	}}

	meta, err := newService(g).FetchMetadata(context.Background(), domain.FileReference("gone.jpg"))
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if meta != nil {
		t.Fatalf("expected nil metadata, got %+v", meta)
	}
}

func TestFetchMetadataPropagatesTransportErrors(t *testing.T) {
	g := &fakeGetter{responses: map[string]string{}}

	if _, err := newService(g).FetchMetadata(context.Background(), domain.FileReference("x.jpg")); err == nil {
		t.Fatal("expected transport error to propagate")
	}
}
