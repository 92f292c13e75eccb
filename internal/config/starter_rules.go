package config

import (
	"fmt"
	"strings"
)

// DefaultURLPrefixes returns sign-in and account pages that rarely belong in
// a work report. They seed the starter rules file.
func DefaultURLPrefixes() []string {
	return []string{
		// Authentication & Identity
		"https://accounts.google.com/",
		"https://login.microsoftonline.com/",
		"https://login.live.com/",
		"https://github.com/login",
		"https://github.com/sessions/",
		"https://slack.com/signin",
		"https://www.notion.so/login",

		// Password Managers
		"https://my.1password.com/",
		"https://vault.bitwarden.com/",

		// HR & Payroll
		"https://www.myworkday.com/",
		"https://workforcenow.adp.com/",
		"https://app.gusto.com/",
	}
}

// DefaultURLContains returns URL fragments excluded by the starter rules.
func DefaultURLContains() []string {
	return []string{
		"/oauth/",
		"/saml/",
		"/sso/",
	}
}

// StarterRules returns a JSON5 exclusion rules document for `rules init`.
func StarterRules() string {
	var b strings.Builder

	b.WriteString("// dayreport exclusion rules (JSON5).\n")
	b.WriteString("// Encrypt with `dayreport rules encrypt` after editing.\n")
	b.WriteString("{\n")

	b.WriteString("  // Browser visits whose URL starts with one of these are dropped.\n")
	writeList(&b, "urlPrefixes", DefaultURLPrefixes())
	b.WriteString("  // Browser visits whose URL contains one of these are dropped.\n")
	writeList(&b, "urlContains", DefaultURLContains())
	b.WriteString("  // 32-character Notion page ids to hide.\n")
	writeList(&b, "notionIds", nil)
	b.WriteString("  // Case-insensitive page title fragments to hide.\n")
	writeList(&b, "titleContains", nil)
	b.WriteString("  // Per-channel message fragments, e.g. {channel: \"random\", patterns: [\"lunch\"]}.\n")
	b.WriteString("  messageExclusions: [],\n")
	b.WriteString("  // Only events from these calendars are reported.\n")
	writeList(&b, "includedCalendarNames", nil)

	b.WriteString("}\n")
	return b.String()
}

func writeList(b *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		fmt.Fprintf(b, "  %s: [],\n", key)
		return
	}
	fmt.Fprintf(b, "  %s: [\n", key)
	for _, v := range values {
		fmt.Fprintf(b, "    %q,\n", v)
	}
	b.WriteString("  ],\n")
}
