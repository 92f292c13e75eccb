package exclusion

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/runnerr0/dayreport/internal/record"
)

// personalChannelPrefix marks personal "times" channels, which never appear
// in a report regardless of configuration.
const personalChannelPrefix = "times-"

var notionIDRe = regexp.MustCompile(`notion\.so/.*-?([0-9a-f]{32})`)

// privateUse matches the BMP private use area, where icon fonts put glyphs
// that show up in page titles.
var privateUse = runes.Predicate(func(r rune) bool { return r >= 0xE000 && r <= 0xF8FF })

// Decision is the outcome of evaluating one record. Rule names the rule
// that excluded it, or is empty when the record is included.
type Decision struct {
	Include bool
	Rule    string
}

// Filter evaluates records against a fixed set of rules. It is safe for
// concurrent use.
type Filter struct {
	rules         Rules
	titlePatterns []string
	notionIDs     map[string]struct{}
	calendars     map[string]struct{}
}

// New prepares rules for repeated evaluation.
func New(rules Rules) *Filter {
	f := &Filter{
		rules:     rules,
		notionIDs: toSet(rules.NotionIDs),
		calendars: toSet(rules.IncludedCalendarNames),
	}
	for _, p := range rules.TitleContains {
		f.titlePatterns = append(f.titlePatterns, normalizeTitle(p))
	}
	return f
}

// ShouldInclude reports whether rec passes rules.
func ShouldInclude(rec record.Record, rules Rules) bool {
	return New(rules).ShouldInclude(rec)
}

// ShouldInclude reports whether rec passes the filter.
func (f *Filter) ShouldInclude(rec record.Record) bool {
	return f.Evaluate(rec).Include
}

// Evaluate decides whether rec is kept and which rule dropped it if not.
// Browser and message rules are deny-lists; calendar names are an allow-list.
func (f *Filter) Evaluate(rec record.Record) Decision {
	switch r := rec.(type) {
	case record.Browser:
		return f.evaluateBrowser(r)
	case record.Message:
		return f.evaluateMessage(r)
	case record.Calendar:
		if _, ok := f.calendars[r.CalendarName]; ok {
			return Decision{Include: true}
		}
		return Decision{Rule: "includedCalendarNames: " + r.CalendarName + " not listed"}
	default:
		return Decision{Rule: "unknown record kind"}
	}
}

func (f *Filter) evaluateBrowser(r record.Browser) Decision {
	for _, p := range f.rules.URLPrefixes {
		if strings.HasPrefix(r.URL, p) {
			return Decision{Rule: "urlPrefixes: " + p}
		}
	}
	for _, p := range f.rules.URLContains {
		if strings.Contains(r.URL, p) {
			return Decision{Rule: "urlContains: " + p}
		}
	}
	if id := NotionID(r.URL); id != "" {
		if _, ok := f.notionIDs[id]; ok {
			return Decision{Rule: "notionIds: " + id}
		}
	}
	if len(f.titlePatterns) > 0 {
		title := normalizeTitle(r.Title)
		for i, p := range f.titlePatterns {
			if strings.Contains(title, p) {
				return Decision{Rule: "titleContains: " + f.rules.TitleContains[i]}
			}
		}
	}
	return Decision{Include: true}
}

func (f *Filter) evaluateMessage(r record.Message) Decision {
	if strings.HasPrefix(r.Channel, personalChannelPrefix) {
		return Decision{Rule: "channel prefix: " + personalChannelPrefix}
	}
	for _, ex := range f.rules.MessageExclusions {
		if ex.Channel != r.Channel {
			continue
		}
		for _, p := range ex.Patterns {
			if strings.Contains(r.Message, p) {
				return Decision{Rule: "messageExclusions: " + ex.Channel + ": " + p}
			}
		}
	}
	return Decision{Include: true}
}

// NotionID extracts the 32-hex-character Notion page id from u, or "".
func NotionID(u string) string {
	m := notionIDRe.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	return m[1]
}

// normalizeTitle strips private-use glyphs and upper-cases s.
func normalizeTitle(s string) string {
	t := transform.Chain(runes.Remove(privateUse), cases.Upper(language.Und))
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToUpper(s)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
