package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

var (
	clockPattern = regexp.MustCompile(`\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?`)

	// Session prayer-time patterns, most specific first.
	jumuahPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)jumaa?h?[:\s]*(\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?)`),
		regexp.MustCompile(`(?i)(?:jumu'?ah|friday\s+prayer)[^.\n]*?(\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?)`),
	}

	khutbaPattern = regexp.MustCompile(`(?i)(?:khutbah?|sermon)\s+(?:begins?\s+)?(?:promptly\s+)?(?:at\s+)?(\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?)`)

	imamPattern = regexp.MustCompile(`(?i)(?:imam|sheikh|dr\.?)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`)
)

// timeMatches returns every clock-shaped substring in text, in order.
func timeMatches(text string) []string {
	return clockPattern.FindAllString(text, -1)
}

// extractJumuahSessions scans the page text for Friday prayer sessions.
// A page can publish several (back-to-back services); each distinct
// prayer time becomes one session, paired with a khutba time when one
// is announced nearby.
func extractJumuahSessions(doc *goquery.Document) []model.JumuahSession {
	text := doc.Text()

	var prayerTimes []model.TimeValue
	seen := make(map[string]bool)
	for _, pattern := range jumuahPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			tv, err := model.ParseTimeValue(m[1])
			if err != nil {
				continue
			}
			if !seen[tv.String()] {
				seen[tv.String()] = true
				prayerTimes = append(prayerTimes, tv)
			}
		}
	}
	if len(prayerTimes) == 0 {
		return nil
	}

	var khutba *model.TimeValue
	if m := khutbaPattern.FindStringSubmatch(text); m != nil {
		if tv, err := model.ParseTimeValue(m[1]); err == nil {
			khutba = &tv
		}
	}

	var imam string
	if m := imamPattern.FindStringSubmatch(text); m != nil {
		imam = strings.TrimSpace(m[1])
	}

	sessions := make([]model.JumuahSession, 0, len(prayerTimes))
	for i, tv := range prayerTimes {
		session := model.JumuahSession{
			Ordinal:         i + 1,
			PrayerTime:      tv,
			DurationMinutes: 45,
		}
		// A single announced khutba time belongs to the first session;
		// later sessions fall back to the configured lead.
		if i == 0 {
			session.KhutbaStart = khutba
			session.ImamName = imam
		}
		sessions = append(sessions, session)
	}
	return sessions
}
