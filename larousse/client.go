// Package larousse fetches dictionary pages for a word and cuts out the
// definition fragment.
//
// A lookup is a single HTTP GET. The page is reduced to its div#definition
// block; when the word is unknown the site renders a spelling-corrector
// section instead, which is returned after NotFoundBanner. When the plain
// response is blocked or holds neither section and browser escalation is
// enabled, the page is loaded once more in a headless Chrome.
//
// Usage:
//
//	c := larousse.New(larousse.Config{})
//	defer c.Close()
//	res, err := c.Fetch(ctx, "écouter")
package larousse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NotFoundBanner prefixes the fragment when the page has no definition.
const NotFoundBanner = "<h1 style='color:#ff0422;text-align:center'>Aucun résultat trouvé</h1>"

// ErrEmptyWord is returned by Fetch for a blank word.
var ErrEmptyWord = errors.New("larousse: empty word")

// Result is the outcome of one lookup.
type Result struct {
	Word       string `json:"word"`
	URL        string `json:"url"`
	Fragment   string `json:"fragment"`
	Found      bool   `json:"found"` // a div#definition block was present
	StatusCode int    `json:"status_code"`
	ViaBrowser bool   `json:"via_browser"`
}

// Client fetches definition fragments. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	cfg     Config
	pin     hostPin
	browser pageLoader
}

// pageLoader renders a page in a real browser. *browser implements it.
type pageLoader interface {
	html(ctx context.Context, pageURL string) (string, error)
	close() error
}

// New creates a Client. Requests and redirects are pinned to the host of
// BaseURL, then checked by the configured URL validator.
func New(cfg Config) *Client {
	cfg.defaults()
	c := &Client{cfg: cfg, pin: newHostPin(cfg.BaseURL)}
	c.http = &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("too many redirects (%d)", len(via))
			}
			if err := c.checkURL(req.URL); err != nil {
				return fmt.Errorf("redirect blocked: %w", err)
			}
			return nil
		},
	}
	if cfg.Browser.Enabled {
		c.browser = newBrowser(cfg.Browser, cfg.Logger)
	}
	return c
}

// Close releases the headless browser, if one was launched.
func (c *Client) Close() error {
	if c.browser == nil {
		return nil
	}
	return c.browser.close()
}

func (c *Client) checkURL(u *url.URL) error {
	if err := c.pin.check(u); err != nil {
		return err
	}
	return c.cfg.URLValidator(u.String())
}

// PageURL returns the dictionary URL for word.
func (c *Client) PageURL(word string) string {
	return c.cfg.BaseURL + url.PathEscape(strings.ToLower(strings.TrimSpace(word)))
}

// Fetch retrieves the page for word and returns its definition fragment.
func (c *Client) Fetch(ctx context.Context, word string) (*Result, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}
	pageURL := c.PageURL(word)
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("larousse: page url: %w", err)
	}
	if err := c.checkURL(u); err != nil {
		return nil, fmt.Errorf("larousse: url blocked: %w", err)
	}
	log := c.cfg.Logger.With("word", word, "url", pageURL)

	body, status, err := c.get(ctx, pageURL)
	if err != nil && c.browser == nil {
		return nil, err
	}

	res := &Result{Word: word, URL: pageURL, StatusCode: status}
	var hasSection bool
	if err == nil {
		res.Fragment, res.Found, hasSection = cutFragment(body)
	}

	blocked := err != nil || status < 200 || status >= 300
	if c.browser != nil && (blocked || !hasSection) {
		log.Debug("larousse: escalating to browser", "status", status, "error", err)
		page, berr := c.browser.html(ctx, pageURL)
		if berr != nil {
			if err != nil {
				return nil, fmt.Errorf("%w (browser: %v)", err, berr)
			}
			log.Warn("larousse: browser escalation failed", "error", berr)
		} else {
			res.Fragment, res.Found, _ = cutFragment([]byte(page))
			res.ViaBrowser = true
		}
	}

	log.Debug("larousse: fetched", "status", status, "found", res.Found, "via_browser", res.ViaBrowser)
	return res, nil
}

func (c *Client) get(ctx context.Context, pageURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("larousse: new request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("larousse: get: %w", err)
	}
	defer resp.Body.Close()

	body, err := readPage(resp.Body, c.cfg.MaxBytes)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("larousse: read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// cutFragment reduces a full page to the definition block. found reports a
// div#definition; hasSection reports either it or the corrector section.
func cutFragment(page []byte) (fragment string, found, hasSection bool) {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return NotFoundBanner, false, false
	}
	doc := goquery.NewDocumentFromNode(root)

	if def := doc.Find("div#definition").First(); def.Length() > 0 {
		if out, err := render(def.Get(0)); err == nil {
			return out, true, true
		}
	}
	if corr := doc.Find("section.corrector").First(); corr.Length() > 0 {
		if out, err := render(corr.Get(0)); err == nil {
			return NotFoundBanner + out, false, true
		}
	}
	return NotFoundBanner, false, false
}

func render(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}
