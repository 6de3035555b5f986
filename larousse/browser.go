package larousse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// browser lazily launches (or connects to) one Chrome and opens a stealth
// tab per lookup.
type browser struct {
	cfg    BrowserConfig
	logger *slog.Logger

	mu   sync.Mutex
	b    *rod.Browser
	lnch *launcher.Launcher
}

func newBrowser(cfg BrowserConfig, logger *slog.Logger) *browser {
	return &browser{cfg: cfg, logger: logger}
}

func (br *browser) get() (*rod.Browser, error) {
	br.mu.Lock()
	defer br.mu.Unlock()
	if br.b != nil {
		return br.b, nil
	}

	wsURL := br.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		br.lnch = l
		br.logger.Info("larousse: launched local chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	br.b = b
	return b, nil
}

// html navigates a fresh stealth tab to pageURL and returns the rendered
// document.
func (br *browser) html(ctx context.Context, pageURL string) (string, error) {
	b, err := br.get()
	if err != nil {
		return "", err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return "", fmt.Errorf("browser: create tab: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, br.cfg.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return "", fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		br.logger.Warn("larousse: wait load", "url", pageURL, "error", err)
	}
	return page.Context(navCtx).HTML()
}

func (br *browser) close() error {
	br.mu.Lock()
	defer br.mu.Unlock()
	var err error
	if br.b != nil {
		err = br.b.Close()
		br.b = nil
	}
	if br.lnch != nil {
		br.lnch.Kill()
		br.lnch = nil
	}
	return err
}
