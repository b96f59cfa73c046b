package finder

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sells-group/profile-finder/internal/model"
)

var (
	siteMarkerRe  = regexp.MustCompile(`(?i)\s*[-|–—·]\s*linkedin\s*$`)
	titleSepRe    = regexp.MustCompile(`\s+[-–—|]\s+`)
	snippetSepRe  = regexp.MustCompile(`\s*[·|•]\s*|\s+[-–—]\s+`)
	atRe          = regexp.MustCompile(`\s+(?:at|@)\s+`)
	experienceRe  = regexp.MustCompile(`(?i)experience:\s*([^·|•\n]+)`)
	locationRe    = regexp.MustCompile(`(?i)location:\s*([^·|•\n]+)`)
	connectionsRe = regexp.MustCompile(`(?i)(\d[\d,]*\+?)\s*connections(?:\s+on\s+linkedin)?`)
	labelRe       = regexp.MustCompile(`(?i)\b(?:experience|education|location|followers?|connections?):`)
	boilerplateRe = regexp.MustCompile(`(?i)view [^·|•]*?profile on linkedin[^·|•.]*\.?|the world'?s largest professional community\.?`)

	areaRe      = regexp.MustCompile(`^(?:Greater [\p{L} .'-]+ Area|[\p{L} .'-]+ (?:Metropolitan|Bay) Area)$`)
	cityStateRe = regexp.MustCompile(`^\p{Lu}[\p{L} .'-]*, \p{Lu}{2}$`)
	cityRegion  = regexp.MustCompile(`^\p{Lu}[\p{L} .'-]*, (\p{Lu}[\p{L} .'-]*)(, \p{Lu}[\p{L} .'-]*)?$`)
)

// regions are the second parts accepted in a two-part "City, Region" place.
var regions = map[string]bool{
	"alabama": true, "alaska": true, "arizona": true, "arkansas": true, "california": true,
	"colorado": true, "connecticut": true, "delaware": true, "florida": true, "georgia": true,
	"hawaii": true, "idaho": true, "illinois": true, "indiana": true, "iowa": true,
	"kansas": true, "kentucky": true, "louisiana": true, "maine": true, "maryland": true,
	"massachusetts": true, "michigan": true, "minnesota": true, "mississippi": true, "missouri": true,
	"montana": true, "nebraska": true, "nevada": true, "new hampshire": true, "new jersey": true,
	"new mexico": true, "new york": true, "north carolina": true, "north dakota": true, "ohio": true,
	"oklahoma": true, "oregon": true, "pennsylvania": true, "rhode island": true, "south carolina": true,
	"south dakota": true, "tennessee": true, "texas": true, "utah": true, "vermont": true,
	"virginia": true, "washington": true, "west virginia": true, "wisconsin": true, "wyoming": true,
	"district of columbia": true, "ontario": true, "quebec": true, "british columbia": true, "alberta": true,
	"england": true, "scotland": true, "wales": true, "ireland": true, "united kingdom": true,
	"united states": true, "canada": true, "australia": true, "india": true, "germany": true,
	"france": true, "spain": true, "italy": true, "netherlands": true, "mexico": true,
	"brazil": true, "singapore": true, "japan": true, "china": true, "israel": true,
}

// Extract parses a search hit into profile attributes. It never fails:
// anything it cannot recognise is left empty.
//
// Job title and company come from the first rule that applies:
//  1. "Name - Title - Company" in the title
//  2. "Name - Title at Company" in the title
//  3. "Experience: Company" and a "Title at Company" segment in the snippet
//  4. "Name - X": X is the company when it carries a legal suffix or matches
//     the snippet's Experience entry, otherwise the job title
func Extract(hit model.RawHit) model.ExtractedProfile {
	var p model.ExtractedProfile

	segs := titleSegments(hit.Title)
	if len(segs) == 0 {
		return p
	}
	p.NameExtracted = segs[0]

	var titleLocation string
	if len(segs) >= 3 && isPlace(segs[len(segs)-1]) {
		titleLocation = segs[len(segs)-1]
		segs = segs[:len(segs)-1]
	}

	snippet := collapse(hit.Snippet)
	var consumed []string

	switch {
	case len(segs) >= 3:
		p.JobTitle, p.Company = segs[1], segs[2]
	case len(segs) == 2:
		if parts := atRe.Split(segs[1], 2); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			p.JobTitle, p.Company = parts[0], parts[1]
		}
	}

	expCompany, expSpan := labeled(snippet, experienceRe)
	if expSpan != "" {
		consumed = append(consumed, expSpan)
		if p.Company == "" {
			p.Company = expCompany
		}
	}

	if p.JobTitle == "" || p.Company == "" {
		if title, company, seg := snippetRole(snippet); seg != "" {
			if p.JobTitle == "" {
				p.JobTitle = title
			}
			if p.Company == "" {
				p.Company = company
			}
			consumed = append(consumed, seg)
		}
	}

	if len(segs) == 2 && (p.JobTitle == "" || p.Company == "") {
		x := segs[1]
		isCompany := hasLegalSuffix(x) ||
			(expCompany != "" && NormalizeCompany(x) == NormalizeCompany(expCompany))
		switch {
		case isCompany && p.Company == "":
			p.Company = x
		case !isCompany && p.JobTitle == "":
			p.JobTitle = x
		}
	}

	if loc, span := labeled(snippet, locationRe); span != "" {
		p.Location = loc
		consumed = append(consumed, span)
	} else if titleLocation != "" {
		p.Location = titleLocation
	} else if loc := snippetPlace(snippet); loc != "" {
		p.Location = loc
		consumed = append(consumed, loc)
	}

	if m := connectionsRe.FindStringSubmatch(snippet); m != nil {
		p.Connections = strings.ReplaceAll(m[1], ",", "")
		consumed = append(consumed, m[0])
	}

	p.Bio = bio(snippet, consumed)
	return p
}

// titleSegments strips the trailing site marker and splits the title on
// " - ", " – ", " — " and " | ".
func titleSegments(title string) []string {
	title = siteMarkerRe.ReplaceAllString(collapse(title), "")
	var out []string
	for _, s := range titleSepRe.Split(title, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// labeled returns the value after a "Label:" match, cut at the next label,
// along with the consumed text.
func labeled(s string, re *regexp.Regexp) (value, span string) {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return "", ""
	}
	raw := s[m[2]:m[3]]
	if i := labelRe.FindStringIndex(raw); i != nil {
		raw = raw[:i[0]]
	}
	if i := connectionsRe.FindStringIndex(raw); i != nil {
		raw = raw[:i[0]]
	}
	value = strings.TrimFunc(raw, trimmable)
	if value == "" {
		return "", ""
	}
	return value, s[m[0]:m[2]] + raw
}

// snippetRole finds the first snippet segment shaped like "Title at Company".
func snippetRole(snippet string) (title, company, seg string) {
	for _, s := range snippetSepRe.Split(snippet, -1) {
		s = strings.TrimFunc(s, trimmable)
		if s == "" || labelRe.MatchString(s) {
			continue
		}
		parts := atRe.Split(s, 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		if !startsUpper(parts[0]) || !startsUpper(parts[1]) || len(strings.Fields(parts[0])) > 6 {
			continue
		}
		return parts[0], parts[1], s
	}
	return "", "", ""
}

// snippetPlace returns the last snippet segment that looks like a place.
func snippetPlace(snippet string) string {
	segs := snippetSepRe.Split(snippet, -1)
	for i := len(segs) - 1; i >= 0; i-- {
		s := strings.TrimFunc(segs[i], trimmable)
		if isPlace(s) {
			return s
		}
	}
	return ""
}

func isPlace(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || hasLegalSuffix(s) || len(strings.Fields(s)) > 8 {
		return false
	}
	if areaRe.MatchString(s) || cityStateRe.MatchString(s) {
		return true
	}
	m := cityRegion.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	// Three parts ("City, Region, Country") are always taken as a place.
	return m[2] != "" || regions[strings.ToLower(m[1])]
}

// bio is the snippet minus consumed fragments and site boilerplate, with
// separators collapsed to " · ".
func bio(snippet string, consumed []string) string {
	rest := snippet
	for _, c := range consumed {
		rest = strings.Replace(rest, c, " · ", 1)
	}
	rest = boilerplateRe.ReplaceAllString(rest, " · ")

	var parts []string
	for _, s := range snippetSepRe.Split(rest, -1) {
		s = strings.TrimFunc(s, func(r rune) bool { return r == '.' || trimmable(r) })
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func trimmable(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("·|•,;:", r)
}
