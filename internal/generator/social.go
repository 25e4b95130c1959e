package generator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Profile is the best-effort result of scanning a social profile URL.
type Profile struct {
	URL         string   `json:"url"`
	Platform    string   `json:"platform"`
	Handle      string   `json:"handle,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Hobbies     []string `json:"hobbies"`
}

var platformHosts = map[string]string{
	"instagram.com": "instagram",
	"facebook.com":  "facebook",
	"fb.com":        "facebook",
	"tiktok.com":    "tiktok",
	"twitter.com":   "x",
	"x.com":         "x",
	"linkedin.com":  "linkedin",
	"youtube.com":   "youtube",
	"pinterest.com": "pinterest",
}

var platformHobbies = map[string][]string{
	"instagram": {"photography", "travel"},
	"tiktok":    {"dancing", "making videos"},
	"youtube":   {"making videos"},
	"pinterest": {"crafting", "home decor"},
	"linkedin":  {"networking"},
	"x":         {"sharing opinions"},
	"facebook":  {"keeping in touch"},
}

// ignoredSegments are path prefixes that never name the profile owner.
var ignoredSegments = map[string]bool{
	"in": true, "user": true, "c": true, "people": true, "profile.php": true,
}

// SocialScanner turns a profile URL into a Profile. The URL-derived part is
// deterministic; page fetching is optional and only ever adds detail.
type SocialScanner struct {
	httpClient *http.Client
	fetch      bool
}

func NewSocialScanner(fetch bool, timeout time.Duration) *SocialScanner {
	return &SocialScanner{
		httpClient: &http.Client{Timeout: timeout},
		fetch:      fetch,
	}
}

func (s *SocialScanner) Scan(ctx context.Context, rawURL string) (*Profile, error) {
	profile, err := ProfileFromURL(rawURL)
	if err != nil {
		return nil, err
	}
	if !s.fetch {
		return profile, nil
	}

	// fetch failures keep the URL-derived profile
	if doc, err := s.fetchDocument(ctx, profile.URL); err == nil {
		enrichFromDocument(profile, doc)
	}
	return profile, nil
}

// ProfileFromURL derives platform, handle and a display name from the URL alone.
func ProfileFromURL(rawURL string) (*Profile, error) {
	raw := strings.TrimSpace(rawURL)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("parse profile url: invalid url %q", rawURL)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	platform, ok := platformHosts[host]
	if !ok {
		platform = "web"
	}

	handle := ""
	for _, seg := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if seg == "" || ignoredSegments[seg] {
			continue
		}
		handle = strings.TrimPrefix(seg, "@")
		break
	}
	if handle == "" && u.Query().Get("id") != "" {
		handle = u.Query().Get("id")
	}

	hobbies := platformHobbies[platform]
	if hobbies == nil {
		hobbies = []string{}
	}

	return &Profile{
		URL:         u.String(),
		Platform:    platform,
		Handle:      handle,
		DisplayName: displayNameFromHandle(handle),
		Hobbies:     append([]string(nil), hobbies...),
	}, nil
}

func displayNameFromHandle(handle string) string {
	parts := strings.FieldsFunc(handle, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || unicode.IsDigit(r)
	})

	words := make([]string, 0, len(parts))
	for _, p := range parts {
		r := []rune(strings.ToLower(p))
		r[0] = unicode.ToUpper(r[0])
		words = append(words, string(r))
	}
	return strings.Join(words, " ")
}

func (s *SocialScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SongGiftBot/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func enrichFromDocument(profile *Profile, doc *goquery.Document) {
	meta := func(property string) string {
		v, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content")
		return strings.TrimSpace(v)
	}

	title := meta("og:title")
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title != "" {
		// "Jane Doe (@jane) • Instagram photos" -> "Jane Doe"
		if i := strings.IndexAny(title, "(|•"); i > 0 {
			title = strings.TrimSpace(title[:i])
		}
		profile.DisplayName = title
	}

	if desc := meta("og:description"); desc != "" {
		profile.Bio = desc
	}
}
