package convert

import (
	"fmt"
	"net/url"
	"regexp"
)

var (
	notionPageRe        = regexp.MustCompile(`https://www\.notion\.so/.*?-?([0-9a-f]{32})`)
	githubPullRe        = regexp.MustCompile(`https://github\.com/(.*?)/(.*?)/pull/(\d+)`)
	notificationCountRe = regexp.MustCompile(`^\(\d+\+?\)\s`)
)

// canonicalURL reduces a visited URL to the identity used for reporting and
// dedup: Notion pages collapse to their page id, GitHub pull requests drop
// their sub-tabs, and every URL loses its query string and fragment.
func canonicalURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q is not absolute", raw)
	}

	href := u.String()
	if m := notionPageRe.FindStringSubmatch(href); m != nil {
		u = &url.URL{Scheme: "https", Host: "www.notion.so", Path: "/" + m[1]}
	} else if m := githubPullRe.FindStringSubmatch(href); m != nil {
		u = &url.URL{Scheme: "https", Host: "github.com", Path: fmt.Sprintf("/%s/%s/pull/%s", m[1], m[2], m[3])}
	}

	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// isNotionHost reports whether u points at Notion, whose tab titles carry
// an unread-notification counter such as "(3) ".
func isNotionHost(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	switch parsed.Hostname() {
	case "www.notion.so", "notion.so":
		return true
	}
	return false
}

func stripNotificationCount(title string) string {
	return notificationCountRe.ReplaceAllString(title, "")
}
