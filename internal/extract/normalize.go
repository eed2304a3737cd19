package extract

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/transportdesk/lr-extractor/constants"
)

var (
	reTruckSeparators = regexp.MustCompile(`[\s.\-]`)
	reFix             = regexp.MustCompile(`(?i)fix`)
	reFirstNumber     = regexp.MustCompile(`-?\d+(\.\d+)?`)
	reWhitespace      = regexp.MustCompile(`\s+`)
)

// TitleCase lowercases the value, then upper-cases the first rune of each
// whitespace-separated token and rejoins with single spaces.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	words := reWhitespace.Split(strings.ToLower(s), -1)
	out := words[:0]
	for _, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		out = append(out, string(r))
	}
	return strings.Join(out, " ")
}

// NormalizeTruckNumber canonicalizes a truck identifier. Unassigned-vehicle
// phrases stay as the lowercase phrase; real plate numbers lose their
// spaces/dots/hyphens and are upper-cased ("MH 09 HH 4512" -> "MH09HH4512").
func NormalizeTruckNumber(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if lower := strings.ToLower(s); constants.IsUnassignedVehiclePhrase(lower) {
		return lower
	}
	return strings.ToUpper(reTruckSeparators.ReplaceAllString(s, ""))
}

// matchUnassignedPhrase scans the raw message for the unassigned-vehicle
// phrases in priority order. Longer phrases are listed before their
// substrings, so the first hit wins.
func matchUnassignedPhrase(message string) string {
	lower := strings.ToLower(message)
	for _, p := range constants.UnassignedVehiclePhrases {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return ""
}

// NormalizeWeight applies the weight policy: "fix" values pass through
// verbatim (trimmed); otherwise the first decimal number is extracted and,
// when its magnitude is strictly between 0 and 100, read as tonnes and
// converted to kilograms. Values with no extractable number are kept as-is.
func NormalizeWeight(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if reFix.MatchString(s) {
		return s
	}
	num := reFirstNumber.FindString(s)
	if num == "" {
		return s
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return s
	}
	if abs := math.Abs(f); abs > 0 && abs < 100 {
		return strconv.FormatInt(int64(math.Round(f*1000)), 10)
	}
	return strconv.FormatInt(int64(math.Round(f)), 10)
}

// PostProcess turns the model's provisional fields into the authoritative
// record. The model output is never trusted field-by-field: truck number,
// route, description, weight and name are all re-derived or re-checked
// against the raw message.
func PostProcess(fields ShipmentFields, message string, logger *slog.Logger) ShipmentFields {
	if logger == nil {
		logger = slog.Default()
	}

	out := ShipmentFields{
		TruckNumber: strings.TrimSpace(fields.TruckNumber),
		From:        strings.TrimSpace(fields.From),
		To:          strings.TrimSpace(fields.To),
		Weight:      strings.TrimSpace(fields.Weight),
		Name:        strings.TrimSpace(fields.Name),
	}

	// truckNumber: fall back to unassigned-vehicle phrases, then canonicalize
	if out.TruckNumber == "" {
		out.TruckNumber = matchUnassignedPhrase(message)
	}
	out.TruckNumber = NormalizeTruckNumber(out.TruckNumber)

	// from/to: the heuristic only runs when the model omitted the origin, and
	// its destination only fills an empty model destination
	if out.From == "" {
		if origin, dest, ok := DetectRoute(message, logger); ok {
			out.From = origin
			if out.To == "" {
				out.To = dest
			}
			logger.Debug("extract.route_detected", "from", origin, "to", dest)
		}
	}
	out.From = TitleCase(out.From)
	out.To = TitleCase(out.To)

	// description: rebuilt solely from catalog matches, never the model's text
	if goods := FindGoods(message); len(goods) > 0 {
		titled := make([]string, len(goods))
		for i, g := range goods {
			titled[i] = TitleCase(g)
		}
		out.Description = strings.Join(titled, ", ")
	}

	out.Weight = NormalizeWeight(out.Weight)
	out.Name = TitleCase(out.Name)

	return out
}
