// Package scraper is the schedule-extraction collaborator: it turns a
// mosque website (or, failing that, the Al Adhan API) into a
// MosqueSchedule. All free-text time parsing happens here, at the
// boundary; the engine only ever receives normalized TimeValues.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// ErrNoScheduleFound means no extraction strategy produced any prayer
// time. Callers fall back to the prayer-times API or the default table.
var ErrNoScheduleFound = errors.New("no prayer schedule found")

// nameAliases maps the spellings mosques actually publish onto
// canonical kinds. Ordered so matching is deterministic.
var nameAliases = []struct {
	alias string
	kind  model.PrayerKind
}{
	{"fajr", model.PrayerFajr}, {"dawn", model.PrayerFajr}, {"subh", model.PrayerFajr},
	{"dhuhr", model.PrayerDhuhr}, {"zuhr", model.PrayerDhuhr}, {"noon", model.PrayerDhuhr},
	{"asr", model.PrayerAsr}, {"afternoon", model.PrayerAsr},
	{"maghrib", model.PrayerMaghrib}, {"sunset", model.PrayerMaghrib},
	{"isha", model.PrayerIsha}, {"esha", model.PrayerIsha}, {"night", model.PrayerIsha},
	{"jumaa", model.PrayerJumaa}, {"jummah", model.PrayerJumaa}, {"jumuah", model.PrayerJumaa},
	{"friday", model.PrayerJumaa},
}

// linkKeywords flag anchors that likely lead to a prayer timetable.
var linkKeywords = []string{
	"prayer", "salah", "namaz", "times", "schedule", "timetable",
	"daily", "monthly", "iqama", "adhan", "jamaat",
}

// commonPaths are tried blindly when no promising link is found.
var commonPaths = []string{"/prayer-times", "/prayers", "/schedule", "/times", "/daily-prayers"}

type Scraper struct {
	client *http.Client
}

func New() *Scraper {
	return &Scraper{client: &http.Client{Timeout: 10 * time.Second}}
}

// ScrapeSchedule fetches the mosque website and runs the extraction
// strategies; when the landing page yields nothing it crawls one level
// of prayer-related links.
func (s *Scraper) ScrapeSchedule(ctx context.Context, websiteURL string) (*model.MosqueSchedule, error) {
	schedule, err := s.scrapePage(ctx, websiteURL)
	if err == nil {
		return schedule, nil
	}

	pages, err := s.findPrayerPages(ctx, websiteURL)
	if err != nil {
		return nil, fmt.Errorf("crawl %s: %w", websiteURL, err)
	}
	for _, page := range pages {
		schedule, err := s.scrapePage(ctx, page)
		if err == nil {
			return schedule, nil
		}
	}
	return nil, ErrNoScheduleFound
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// scrapePage runs the extraction strategies against one page, in order
// of reliability: tables first, then styled containers, then raw text.
func (s *Scraper) scrapePage(ctx context.Context, pageURL string) (*model.MosqueSchedule, error) {
	doc, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	times := extractFromTables(doc)
	if len(times) == 0 {
		times = extractFromContainers(doc)
	}
	if len(times) == 0 {
		times = extractFromText(doc)
	}

	jumuah := extractJumuahSessions(doc)

	if len(times) == 0 && len(jumuah) == 0 {
		return nil, ErrNoScheduleFound
	}
	return &model.MosqueSchedule{
		Times:  times,
		Jumuah: jumuah,
		Source: pageURL,
	}, nil
}

// findPrayerPages collects same-page links whose text suggests a
// timetable, plus the usual well-known paths.
func (s *Scraper) findPrayerPages(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := s.fetch(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var pages []string
	add := func(raw string) {
		ref, err := url.Parse(raw)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		u := resolved.String()
		if !seen[u] && u != baseURL {
			seen[u] = true
			pages = append(pages, u)
		}
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.ToLower(sel.Text())
		for _, kw := range linkKeywords {
			if strings.Contains(text, kw) {
				add(href)
				return
			}
		}
	})
	for _, path := range commonPaths {
		add(path)
	}

	const maxPages = 8
	if len(pages) > maxPages {
		pages = pages[:maxPages]
	}
	return pages, nil
}

// extractFromTables reads rows shaped like "name | adhan | iqama".
func extractFromTables(doc *goquery.Document) []model.RawPrayerTime {
	var times []model.RawPrayerTime
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		kind, ok := parsePrayerName(cells.Eq(0).Text())
		if !ok || kind == model.PrayerJumaa {
			return
		}

		adhan, err := model.ParseTimeValue(cells.Eq(1).Text())
		if err != nil {
			// One malformed cell never aborts the day; the engine
			// substitutes a default for the missing kind.
			log.Debug().Err(err).Str("prayer", string(kind)).Msg("unparseable adhan cell")
			return
		}

		rt := model.RawPrayerTime{Kind: kind, Adhan: adhan}
		if cells.Length() > 2 {
			if iqama, err := model.ParseTimeValue(cells.Eq(2).Text()); err == nil {
				rt.Iqama = &iqama
			}
		}
		times = appendPrayerTime(times, rt)
	})
	return times
}

// extractFromContainers handles modern card layouts where each prayer
// lives in a div or section with a prayer-ish class name.
func extractFromContainers(doc *goquery.Document) []model.RawPrayerTime {
	var times []model.RawPrayerTime
	doc.Find("div, section").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		lower := strings.ToLower(class)
		if !strings.Contains(lower, "prayer") && !strings.Contains(lower, "salah") && !strings.Contains(lower, "time") {
			return
		}
		text := sel.Text()
		kind, ok := parsePrayerName(text)
		if !ok || kind == model.PrayerJumaa {
			return
		}

		found := timeMatches(text)
		if len(found) == 0 {
			return
		}
		rt := model.RawPrayerTime{Kind: kind}
		adhan, err := model.ParseTimeValue(found[0])
		if err != nil {
			return
		}
		rt.Adhan = adhan
		if len(found) > 1 {
			if iqama, err := model.ParseTimeValue(found[1]); err == nil {
				rt.Iqama = &iqama
			}
		}
		times = appendPrayerTime(times, rt)
	})
	return times
}

// extractFromText is the last resort: line-oriented scanning of the
// page's visible text.
func extractFromText(doc *goquery.Document) []model.RawPrayerTime {
	var times []model.RawPrayerTime
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kind, ok := parsePrayerName(line)
		if !ok || kind == model.PrayerJumaa {
			continue
		}
		found := timeMatches(line)
		if len(found) == 0 {
			continue
		}
		adhan, err := model.ParseTimeValue(found[0])
		if err != nil {
			continue
		}
		rt := model.RawPrayerTime{Kind: kind, Adhan: adhan}
		if len(found) > 1 {
			if iqama, err := model.ParseTimeValue(found[1]); err == nil {
				rt.Iqama = &iqama
			}
		}
		times = appendPrayerTime(times, rt)
	}
	return times
}

// appendPrayerTime keeps the first sighting of each kind.
func appendPrayerTime(times []model.RawPrayerTime, rt model.RawPrayerTime) []model.RawPrayerTime {
	for _, existing := range times {
		if existing.Kind == rt.Kind {
			return times
		}
	}
	return append(times, rt)
}

func parsePrayerName(text string) (model.PrayerKind, bool) {
	lower := strings.ToLower(text)
	for _, entry := range nameAliases {
		if strings.Contains(lower, entry.alias) {
			return entry.kind, true
		}
	}
	return "", false
}
