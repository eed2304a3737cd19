package extract

import (
	"regexp"

	"github.com/transportdesk/lr-extractor/constants"
)

// Compiled once at startup; the catalog is immutable for process lifetime.
var goodsMatchers = buildGoodsMatchers()

func buildGoodsMatchers() []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, len(constants.GoodsKeywords))
	for i, kw := range constants.GoodsKeywords {
		matchers[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return matchers
}

// FindGoods collects every distinct catalog keyword present in the message as
// a whole word, in catalog order, deduplicated by exact phrase. Overlapping
// entries ("plate" and "plates") may both match; that is intended.
func FindGoods(message string) []string {
	if message == "" {
		return nil
	}
	var found []string
	seen := make(map[string]struct{}, 4)
	for i, rx := range goodsMatchers {
		kw := constants.GoodsKeywords[i]
		if _, dup := seen[kw]; dup {
			continue
		}
		if rx.MatchString(message) {
			seen[kw] = struct{}{}
			found = append(found, kw)
		}
	}
	return found
}
