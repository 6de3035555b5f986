// Command dicofr looks up French words and serves the dictionary API.
//
// Usage:
//
//	dicofr -config dicofr.yaml                  # HTTP daemon with config file
//	dicofr -db dicofr.db -words dic.json        # HTTP daemon with defaults
//	dicofr -word chat -senses 5                 # look up one word and exit
//	dicofr -parse page.html                     # parse a fragment file and exit
//	curl -s .../chat | dicofr -parse -          # parse stdin
//	dicofr -mcp                                 # MCP server over stdio
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/dicofr/dictionary"
)

var version = "dev"

type options struct {
	configPath string
	dbPath     string
	wordsPath  string
	word       string
	parsePath  string
	senses     int
	listen     string
	mcp        bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to dicofr.yaml config file")
	flag.StringVar(&o.dbPath, "db", "", "path to SQLite history database")
	flag.StringVar(&o.wordsPath, "words", "", "path to dic.json word list")
	flag.StringVar(&o.word, "word", "", "look up a word, print JSON and exit")
	flag.StringVar(&o.parsePath, "parse", "", "parse a definition fragment file (- for stdin), print JSON and exit")
	flag.IntVar(&o.senses, "senses", dictionary.DefaultSenses, "max senses (negative = config default, 0 = header only)")
	flag.StringVar(&o.listen, "listen", "", "HTTP listen address (overrides config)")
	flag.BoolVar(&o.mcp, "mcp", false, "serve MCP over stdio instead of HTTP")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, o); err != nil {
		logger.Error("dicofr: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, o options) error {
	cfg, err := resolveConfig(o)
	if err != nil {
		return err
	}

	svc, err := dictionary.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer svc.Close()

	// One-shot: parse a fragment.
	if o.parsePath != "" {
		html, err := readInput(o.parsePath)
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		return printJSON(svc.Parse(html, o.senses))
	}

	// One-shot: lookup.
	if o.word != "" {
		e, err := svc.Lookup(ctx, o.word, o.senses)
		if err != nil {
			return fmt.Errorf("lookup: %w", err)
		}
		return printJSON(e)
	}

	if err := svc.Start(ctx); err != nil {
		return err
	}

	if o.mcp {
		srv := mcp.NewServer(&mcp.Implementation{Name: "dicofr", Version: version}, nil)
		svc.RegisterMCP(srv)
		logger.Info("dicofr: serving MCP on stdio")
		return srv.Run(ctx, &mcp.StdioTransport{})
	}

	return serveHTTP(ctx, logger, svc)
}

func serveHTTP(ctx context.Context, logger *slog.Logger, svc *dictionary.Service) error {
	addr := svc.Config().Listen
	hs := &http.Server{
		Addr:              addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dicofr: listening", "addr", addr)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("dicofr: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

func resolveConfig(o options) (*dictionary.Config, error) {
	cfg := &dictionary.Config{}
	if o.configPath != "" {
		c, err := dictionary.LoadConfigFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.wordsPath != "" {
		cfg.WordsPath = o.wordsPath
	}
	if o.listen != "" {
		cfg.Listen = o.listen
	}
	return cfg, nil
}

func readInput(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
