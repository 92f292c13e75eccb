package exclusion

import (
	"errors"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/dayreport/internal/record"
)

const notionID = "abcdef1234567890abcdef1234567890"

// --- Parse ---

func TestParse_JSON5(t *testing.T) {
	rules, err := Parse([]byte(`{
		// comments and trailing commas are allowed
		urlPrefixes: ["https://accounts.google.com/"],
		urlContains: ['/login',],
		notionIds: ["` + notionID + `"],
		titleContains: ["secret"],
		messageExclusions: [{channel: "general", patterns: ["lunch"]}],
		includedCalendarNames: ["Work"],
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://accounts.google.com/"}, rules.URLPrefixes)
	assert.Equal(t, []string{"/login"}, rules.URLContains)
	assert.Equal(t, []string{notionID}, rules.NotionIDs)
	assert.Equal(t, []string{"secret"}, rules.TitleContains)
	assert.Equal(t, []MessageExclusion{{Channel: "general", Patterns: []string{"lunch"}}}, rules.MessageExclusions)
	assert.Equal(t, []string{"Work"}, rules.IncludedCalendarNames)
}

func TestParse_JSON5Grammar(t *testing.T) {
	rules, err := Parse([]byte(`{
		/* block
		   comment */
		'urlPrefixes': ['https://intranet.example.com/'],
		"urlContains": ["/priv\
ate/"],
		titleContains: ['it\'s secret'],
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://intranet.example.com/"}, rules.URLPrefixes)
	assert.Equal(t, []string{"/private/"}, rules.URLContains)
	assert.Equal(t, []string{"it's secret"}, rules.TitleContains)
}

func TestParse_EmptyObject(t *testing.T) {
	rules, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, Rules{}, rules)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown key", `{urlPrefix: ["x"]}`},
		{"wrong type", `{urlPrefixes: "https://x"}`},
		{"empty pattern", `{urlContains: [""]}`},
		{"bad notion id", `{notionIds: ["ABCDEF"]}`},
		{"exclusion missing patterns", `{messageExclusions: [{channel: "general"}]}`},
		{"not an object", `["x"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.text))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)

			var schemaErr *jsonschema.ValidationError
			assert.True(t, errors.As(err, &schemaErr), "diagnostics should be preserved")
			assert.Contains(t, err.Error(), "invalid exclusion rules")
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte(`{urlPrefixes: [`))
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "parse exclusion rules")
}

// --- Browser ---

func TestEvaluate_BrowserRules(t *testing.T) {
	f := New(Rules{
		URLPrefixes:   []string{"https://accounts.google.com/"},
		URLContains:   []string{"/login"},
		NotionIDs:     []string{notionID},
		TitleContains: []string{"payroll"},
	})

	tests := []struct {
		name    string
		rec     record.Browser
		include bool
		rule    string
	}{
		{
			name: "prefix",
			rec:  record.Browser{Title: "Sign in", URL: "https://accounts.google.com/signin"},
			rule: "urlPrefixes: https://accounts.google.com/",
		},
		{
			name: "contains",
			rec:  record.Browser{Title: "Log in", URL: "https://example.com/login"},
			rule: "urlContains: /login",
		},
		{
			name: "notion id",
			rec:  record.Browser{Title: "Page", URL: "https://www.notion.so/" + notionID},
			rule: "notionIds: " + notionID,
		},
		{
			name: "notion id in slug",
			rec:  record.Browser{Title: "Page", URL: "https://www.notion.so/w/Page-" + notionID},
			rule: "notionIds: " + notionID,
		},
		{
			name: "title case insensitive",
			rec:  record.Browser{Title: "Q1 PayRoll", URL: "https://example.com/a"},
			rule: "titleContains: payroll",
		},
		{
			name: "title with private use glyph",
			rec:  record.Browser{Title: "Pay\ue001roll summary", URL: "https://example.com/b"},
			rule: "titleContains: payroll",
		},
		{
			name:    "other notion page",
			rec:     record.Browser{Title: "Page", URL: "https://www.notion.so/00000000000000000000000000000000"},
			include: true,
		},
		{
			name:    "no match",
			rec:     record.Browser{Title: "Docs", URL: "https://example.com/docs"},
			include: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := f.Evaluate(tt.rec)
			assert.Equal(t, tt.include, d.Include)
			assert.Equal(t, tt.rule, d.Rule)
		})
	}
}

func TestEvaluate_BrowserEmptyRulesIncludesAll(t *testing.T) {
	assert.True(t, ShouldInclude(record.Browser{Title: "x", URL: "https://example.com"}, Rules{}))
}

func TestEvaluate_PrefixIsNotContains(t *testing.T) {
	f := New(Rules{URLPrefixes: []string{"https://accounts.google.com/"}})
	assert.True(t, f.ShouldInclude(record.Browser{
		Title: "redirect",
		URL:   "https://example.com/?next=https://accounts.google.com/",
	}))
}

func TestNotionID(t *testing.T) {
	assert.Equal(t, notionID, NotionID("https://www.notion.so/"+notionID))
	assert.Equal(t, notionID, NotionID("https://www.notion.so/ws/Some-Title-"+notionID))
	assert.Empty(t, NotionID("https://www.notion.so/ws/short-abc123"))
	assert.Empty(t, NotionID("https://example.com/"+notionID))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "HELLO WORLD", normalizeTitle("\ue000hello \uf8ffworld"))
	assert.Equal(t, "STRASSE", normalizeTitle("stra\u00dfe"))
}

// --- Message ---

func TestEvaluate_Messages(t *testing.T) {
	f := New(Rules{MessageExclusions: []MessageExclusion{
		{Channel: "general", Patterns: []string{"lunch", "coffee"}},
	}})

	tests := []struct {
		name    string
		rec     record.Message
		include bool
		rule    string
	}{
		{
			name: "personal channel always excluded",
			rec:  record.Message{Channel: "times-alice", Message: "deployed"},
			rule: "channel prefix: times-",
		},
		{
			name: "channel and pattern",
			rec:  record.Message{Channel: "general", Message: "anyone for coffee?"},
			rule: "messageExclusions: general: coffee",
		},
		{
			name:    "pattern on other channel",
			rec:     record.Message{Channel: "dev", Message: "coffee break"},
			include: true,
		},
		{
			name:    "channel without pattern",
			rec:     record.Message{Channel: "general", Message: "release is out"},
			include: true,
		},
		{
			name:    "times in the middle",
			rec:     record.Message{Channel: "dev-times-x", Message: "hi"},
			include: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := f.Evaluate(tt.rec)
			assert.Equal(t, tt.include, d.Include)
			assert.Equal(t, tt.rule, d.Rule)
		})
	}
}

func TestEvaluate_PersonalChannelWithEmptyRules(t *testing.T) {
	assert.False(t, ShouldInclude(record.Message{Channel: "times-bob", Message: "x"}, Rules{}))
}

// --- Calendar ---

func TestEvaluate_CalendarAllowList(t *testing.T) {
	f := New(Rules{IncludedCalendarNames: []string{"Work"}})

	assert.True(t, f.ShouldInclude(record.Calendar{Title: "Standup", CalendarName: "Work"}))

	d := f.Evaluate(record.Calendar{Title: "Dentist", CalendarName: "Personal"})
	assert.False(t, d.Include)
	assert.Equal(t, "includedCalendarNames: Personal not listed", d.Rule)
}

func TestEvaluate_CalendarWithoutAllowListExcludesAll(t *testing.T) {
	assert.False(t, ShouldInclude(record.Calendar{Title: "Standup", CalendarName: "Work"}, Rules{}))
}

func TestFilter_ParsedRulesEndToEnd(t *testing.T) {
	rules, err := Parse([]byte(`{
		urlContains: ["/login"],
		includedCalendarNames: ["Work"],
	}`))
	require.NoError(t, err)

	f := New(rules)
	assert.False(t, f.ShouldInclude(record.Browser{Title: "x", URL: "https://a.example/login"}))
	assert.True(t, f.ShouldInclude(record.Browser{Title: "x", URL: "https://a.example/home"}))
	assert.True(t, f.ShouldInclude(record.Calendar{CalendarName: "Work"}))
}
