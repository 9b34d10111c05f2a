package fetch

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"
)

// discoveryTTL is how long a successfully discovered value is reused
// before the bootstrap page is consulted again.
const discoveryTTL = 6 * time.Hour

// Discoverer recovers a dynamic API parameter by scraping a bootstrap page
// for its bundled script and scoring the candidate tokens inside. Used for
// publishers that rotate a channel key with each web deploy. Discovery
// failure is never fatal: Resolve falls back to the last-known-good value.
type Discoverer struct {
	client        *Client
	label         string
	bootstrapURL  string
	scriptPattern *regexp.Regexp // first submatch: script URL, possibly relative
	tokenPattern  *regexp.Regexp // first submatch: candidate token
	fallback      string

	mu        sync.Mutex
	value     string
	expiresAt time.Time
	now       func() time.Time
}

// NewDiscoverer builds a resolver for one dynamic parameter. label prefixes
// the metrics/log labels of the two fetches it performs.
func NewDiscoverer(client *Client, label, bootstrapURL string, scriptPattern, tokenPattern *regexp.Regexp, fallback string) *Discoverer {
	return &Discoverer{
		client:        client,
		label:         label,
		bootstrapURL:  bootstrapURL,
		scriptPattern: scriptPattern,
		tokenPattern:  tokenPattern,
		fallback:      fallback,
		now:           time.Now,
	}
}

// Discover fetches the bootstrap page, follows the bundled script reference
// and returns the best-scoring token. It does not consult or update the
// memoized value.
func (d *Discoverer) Discover(ctx context.Context) (string, error) {
	page, err := d.client.Text(ctx, d.label+".bootstrap", d.bootstrapURL)
	if err != nil {
		return "", err
	}
	m := d.scriptPattern.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("no bundled script reference on %s", d.bootstrapURL)
	}
	scriptURL, err := resolveRef(d.bootstrapURL, m[1])
	if err != nil {
		return "", err
	}
	script, err := d.client.Text(ctx, d.label+".script", scriptURL)
	if err != nil {
		return "", err
	}
	token, ok := bestToken(d.tokenPattern, script)
	if !ok {
		return "", fmt.Errorf("no candidate token in %s", scriptURL)
	}
	return token, nil
}

// Resolve returns the memoized value, or discovers a fresh one, or falls
// back to the last-known-good constant. Failures are logged by the fetch
// layer; callers get a usable value either way.
func (d *Discoverer) Resolve(ctx context.Context) string {
	d.mu.Lock()
	if d.value != "" && d.now().Before(d.expiresAt) {
		v := d.value
		d.mu.Unlock()
		return v
	}
	d.mu.Unlock()

	v, err := d.Discover(ctx)
	if err != nil {
		return d.fallback
	}
	d.mu.Lock()
	d.value = v
	d.expiresAt = d.now().Add(discoveryTTL)
	d.mu.Unlock()
	return v
}

// bestToken scores every candidate: suffix length plus bonuses for digits
// and uppercase letters. Short minified identifiers score low; real channel
// keys are long and mixed-case.
func bestToken(pattern *regexp.Regexp, script string) (string, bool) {
	best, bestScore := "", -1
	for _, m := range pattern.FindAllStringSubmatch(script, -1) {
		token := m[1]
		score := len(token)
		if strings.ContainsAny(token, "0123456789") {
			score += 10
		}
		if strings.IndexFunc(token, unicode.IsUpper) >= 0 {
			score += 10
		}
		if score > bestScore {
			best, bestScore = token, score
		}
	}
	return best, bestScore >= 0
}

func resolveRef(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
