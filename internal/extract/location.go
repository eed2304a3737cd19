package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/transportdesk/lr-extractor/constants"
)

// Separator patterns for origin-destination detection, tried in order: the
// word "to", the Hindi word "se", a run of hyphens/dashes, an arrow. Only the
// first pattern that produces a full match is considered; if its spans fail
// location validation the message stays unresolved rather than being guessed
// again with a looser separator.
var routePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([A-Za-z\x{00C0}-\x{017F} &.']{2,}?)\s+to\s+([A-Za-z\x{00C0}-\x{017F} &.']{2,})`),
	regexp.MustCompile(`(?i)([A-Za-z\x{00C0}-\x{017F} &.']{2,}?)\s+se\s+([A-Za-z\x{00C0}-\x{017F} &.']{2,})`),
	regexp.MustCompile(`(?i)([A-Za-z\x{00C0}-\x{017F} &.']{2,}?)\s*[-\x{2013}\x{2014}]+\s*([A-Za-z\x{00C0}-\x{017F} &.']{2,})`),
	regexp.MustCompile(`(?i)([A-Za-z\x{00C0}-\x{017F} &.']{2,}?)\s*->\s*([A-Za-z\x{00C0}-\x{017F} &.']{2,})`),
}

var (
	reUnitToken  = regexp.MustCompile(`(?i)\b(kg|kgs|kilogram|kilograms|ton|tons|tonne|mt|mton|t|gm|gms)\b`)
	reLongDigits = regexp.MustCompile(`\b\d{3,}\b`)
	reLetter     = regexp.MustCompile(`[A-Za-z\x{00C0}-\x{017F}]`)
	reDigit      = regexp.MustCompile(`\d`)
	reEdgePunct  = regexp.MustCompile(`^[:\-]+|[:\-]+$`)
)

// LooksLikeLocation classifies a candidate span as a plausible place name.
// Spans carrying weight/unit tokens, goods keywords, or mostly digits are not
// locations no matter what the separator match looked like.
func LooksLikeLocation(s string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)

	if reUnitToken.MatchString(lower) {
		return false
	}
	// pure long numbers (weights, phone numbers) are never places
	if reLongDigits.MatchString(lower) && !reLetter.MatchString(lower) {
		return false
	}
	for _, kw := range constants.GoodsKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	letters := len(reLetter.FindAllString(s, -1))
	digits := len(reDigit.FindAllString(s, -1))
	if letters < 3 {
		return false
	}
	if digits > letters {
		return false
	}
	return true
}

// DetectRoute runs the origin-destination heuristic over the raw message.
// Both captured spans must pass LooksLikeLocation for the match to be
// accepted.
func DetectRoute(message string, logger *slog.Logger) (origin, dest string, ok bool) {
	if logger == nil {
		logger = slog.Default()
	}
	m := strings.TrimSpace(message)
	if m == "" {
		return "", "", false
	}

	for _, rx := range routePatterns {
		match := rx.FindStringSubmatch(m)
		if match == nil {
			continue
		}
		origin = strings.TrimSpace(reEdgePunct.ReplaceAllString(strings.TrimSpace(match[1]), ""))
		dest = strings.TrimSpace(reEdgePunct.ReplaceAllString(strings.TrimSpace(match[2]), ""))

		originOK := LooksLikeLocation(origin)
		destOK := LooksLikeLocation(dest)
		if originOK && destOK {
			return origin, dest, true
		}
		logger.Debug("extract.route_rejected",
			"origin", origin, "origin_ok", originOK,
			"dest", dest, "dest_ok", destOK,
		)
		// first full match decides; an ambiguous message is left unresolved
		return "", "", false
	}
	return "", "", false
}
