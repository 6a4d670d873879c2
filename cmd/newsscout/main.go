package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/gofeed"
	"github.com/fwojciec/newsscout/goquery"
	"github.com/fwojciec/newsscout/htmltomarkdown"
	nshttp "github.com/fwojciec/newsscout/http"
	"github.com/fwojciec/newsscout/readability"
	"github.com/fwojciec/newsscout/rod"
	"github.com/fwojciec/newsscout/scrape"
	nsslog "github.com/fwojciec/newsscout/slog"
	"github.com/fwojciec/newsscout/sqlite"
	"github.com/fwojciec/newsscout/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Scraper used by scan and run.
	Scraper *scrape.Scraper
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Scraper != nil {
		err = m.Scraper.Close()
	}
	if m.DB != nil {
		if cerr := m.DB.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsscout"),
		kong.Description("Discover and scrape company blog and news articles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"db":         m.DBPath,
			"user_agent": nshttp.DefaultUserAgent,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsscout --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Verbose)

	cmd := strings.Fields(kongCtx.Command())[0]
	if cmd != "scan" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set NEWSSCOUT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		deps.Companies = sqlite.NewCompanyService(m.DB)
		deps.Items = nsslog.NewLoggingItemService(sqlite.NewItemService(m.DB), deps.Logger)
	}

	if cmd == "scan" || cmd == "run" {
		m.Scraper = newScraper(cli, deps.Logger, stderr)
		deps.Scraper = m.Scraper
	}

	return kongCtx.Run(deps)
}

// newScraper wires the scraping pipeline from the global flags.
func newScraper(cli *CLI, logger *slog.Logger, stderr io.Writer) *scrape.Scraper {
	fetcher := nshttp.NewFetcher(
		nshttp.WithTimeout(cli.Timeout),
		nshttp.WithUserAgent(cli.UserAgent),
	)

	s := &scrape.Scraper{
		Fetcher:     nsslog.NewLoggingFetcher(fetcher, logger),
		Renderer:    newsscout.NopRenderer{},
		FeedParser:  gofeed.NewParser(),
		Links:       goquery.NewLinkDiscoverer(),
		Articles:    goquery.NewArticleExtractor(),
		Structured:  goquery.NewStructuredDataExtractor(),
		Metadata:    goquery.NewMetadataExtractor(),
		Detector:    nsslog.NewLoggingDetector(goquery.NewDetector(), logger),
		NextData:    goquery.NewNextDataParser(),
		Sitemaps:    nshttp.NewSitemapParser(),
		Converter:   htmltomarkdown.NewConverter(),
		RateLimiter: scrape.NewDomainLimiter(cli.RPS),
		Logger:      logger,
		Timeout:     cli.Timeout,
		MaxRequests: cli.MaxRequests,
	}

	switch cli.Extractor {
	case "readability":
		s.Extractor = readability.NewExtractor()
	default:
		s.Extractor = trafilatura.NewExtractor()
	}

	if cli.Headless {
		manager, err := rod.NewBrowserManager(rod.WithLazyLaunch())
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for headless rendering; use --no-headless to disable it")
			logger.Warn("headless browser unavailable", "err", err)
		} else {
			renderer := rod.NewRenderer(manager, rod.WithUserAgent(cli.UserAgent))
			s.Renderer = nsslog.NewLoggingRenderer(renderer, logger)
		}
	}

	return s
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsscout.db"
	}
	dir := filepath.Join(home, ".newsscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "newsscout.db")
}
