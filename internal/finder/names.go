package finder

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// honorifics are dropped from names before comparison and query rendering.
var honorifics = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "miss": true, "mx": true,
	"prof": true, "sir": true,
	"phd": true, "md": true, "mba": true, "bs": true, "ba": true,
	"cpa": true, "cfa": true, "cfp": true, "esq": true, "jd": true, "rn": true,
	"pe": true, "dds": true, "jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
}

// nicknameGroups lists names that refer to the same given name. A nickname
// may belong to several groups (Chris, Alex, Sam, Pat).
var nicknameGroups = [][]string{
	{"michael", "mike", "mikey", "mick", "mickey"},
	{"herbert", "herb", "bert"},
	{"robert", "bob", "bobby", "rob", "robbie", "bert"},
	{"albert", "al", "bert"},
	{"elizabeth", "liz", "lizzie", "beth", "betsy", "betty", "eliza", "libby"},
	{"william", "bill", "billy", "will", "willie", "liam"},
	{"richard", "rick", "ricky", "rich", "dick"},
	{"james", "jim", "jimmy", "jamie"},
	{"john", "jack", "johnny", "jon"},
	{"jonathan", "jon", "jonny"},
	{"joseph", "joe", "joey"},
	{"thomas", "tom", "tommy"},
	{"charles", "charlie", "chuck", "chas"},
	{"christopher", "chris", "kit"},
	{"christine", "chris", "chrissy", "tina"},
	{"christina", "chris", "tina"},
	{"daniel", "dan", "danny"},
	{"david", "dave", "davey"},
	{"matthew", "matt"},
	{"anthony", "tony"},
	{"andrew", "andy", "drew"},
	{"edward", "ed", "eddie", "ted", "ned"},
	{"theodore", "ted", "teddy", "theo"},
	{"steven", "steve", "stevie"},
	{"stephen", "steve", "stevie"},
	{"kenneth", "ken", "kenny"},
	{"ronald", "ron", "ronnie"},
	{"donald", "don", "donnie"},
	{"timothy", "tim", "timmy"},
	{"gregory", "greg"},
	{"benjamin", "ben", "benny"},
	{"samuel", "sam", "sammy"},
	{"samantha", "sam", "sammy"},
	{"alexander", "alex", "xander", "sandy"},
	{"alexandra", "alex", "alexa", "sandra", "sandy"},
	{"nicholas", "nick", "nicky"},
	{"patrick", "pat", "patty"},
	{"patricia", "pat", "patty", "trish", "tricia"},
	{"katherine", "kate", "katie", "kathy", "kat"},
	{"catherine", "cathy", "kate", "katie", "cat"},
	{"margaret", "maggie", "meg", "peggy", "marge"},
	{"jennifer", "jen", "jenny"},
	{"jessica", "jess", "jessie"},
	{"rebecca", "becky", "becca"},
	{"susan", "sue", "suzy"},
	{"deborah", "deb", "debbie"},
	{"victoria", "vicky", "tori"},
	{"abigail", "abby"},
	{"gerald", "gerry", "jerry"},
	{"lawrence", "larry"},
	{"leonard", "leo", "len", "lenny"},
	{"raymond", "ray"},
	{"frederick", "fred", "freddy"},
	{"francis", "frank", "fran"},
	{"franklin", "frank"},
	{"harold", "harry", "hal"},
	{"henry", "hank", "harry"},
	{"jeffrey", "jeff"},
	{"joshua", "josh"},
	{"zachary", "zach", "zack"},
	{"nathaniel", "nate", "nat"},
	{"nathan", "nate"},
	{"peter", "pete"},
	{"phillip", "phil"},
	{"philip", "phil"},
	{"walter", "walt", "wally"},
	{"douglas", "doug"},
	{"eugene", "gene"},
	{"pamela", "pam"},
	{"cynthia", "cindy"},
	{"judith", "judy"},
	{"barbara", "barb"},
	{"jacqueline", "jackie"},
	{"kimberly", "kim"},
	{"stephanie", "steph"},
	{"melissa", "missy", "mel"},
	{"vincent", "vince", "vinny"},
	{"gabriel", "gabe"},
}

var nicknameIndex = buildNicknameIndex(nicknameGroups)

func buildNicknameIndex(groups [][]string) map[string][]int {
	idx := make(map[string][]int)
	for gi, g := range groups {
		for _, name := range g {
			idx[name] = append(idx[name], gi)
		}
	}
	return idx
}

// sameGivenName reports whether two tokens appear together in a nickname group.
func sameGivenName(a, b string) bool {
	for _, ga := range nicknameIndex[a] {
		for _, gb := range nicknameIndex[b] {
			if ga == gb {
				return true
			}
		}
	}
	return false
}

// nameTokens tokenizes a person name and drops honorifics, credentials and
// single-letter initials. Initials are kept when nothing else remains.
func nameTokens(name string) []string {
	raw := tokenize(name)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if honorifics[t] || len([]rune(t)) == 1 {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		for _, t := range raw {
			if !honorifics[t] {
				out = append(out, t)
			}
		}
	}
	return out
}

// tokensMatch treats two name tokens as equal when they are identical,
// nicknames of one another, or one edit apart and at least five runes long.
func tokensMatch(a, b string) bool {
	if a == b || sameGivenName(a, b) {
		return true
	}
	if min(len([]rune(a)), len([]rune(b))) >= 5 {
		return levenshtein.ComputeDistance(a, b) <= 1
	}
	return false
}

// NameSimilarity scores two person names in [0,1] with a Dice coefficient
// over name tokens, where tokens pair up under tokensMatch. Token order is
// ignored so "Doe, Jane" matches "Jane Doe".
func NameSimilarity(a, b string) float64 {
	ta, tb := nameTokens(a), nameTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	used := make([]bool, len(tb))
	matched := 0
	for _, x := range ta {
		for j, y := range tb {
			if !used[j] && tokensMatch(x, y) {
				used[j] = true
				matched++
				break
			}
		}
	}
	return 2 * float64(matched) / float64(len(ta)+len(tb))
}

// CleanName strips honorifics, credentials and commas from a name for use in
// a search query. Original casing is kept.
func CleanName(name string) string {
	fields := strings.Fields(strings.ReplaceAll(name, ",", " "))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		key := strings.ToLower(strings.Trim(f, "."))
		key = strings.ReplaceAll(key, ".", "")
		if honorifics[key] {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// CleanCompany removes trailing legal suffixes for use in a search query.
// Original casing is kept.
func CleanCompany(company string) string {
	fields := strings.Fields(company)
	for len(fields) > 1 {
		last := strings.ToLower(strings.ReplaceAll(strings.Trim(fields[len(fields)-1], ".,"), ".", ""))
		if !legalSuffixes[last] {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.TrimRight(strings.Join(fields, " "), ", ")
}
