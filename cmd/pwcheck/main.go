package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/npillmayer/pwdict"
	"github.com/npillmayer/pwdict/internal/audit"
	"github.com/npillmayer/pwdict/internal/config"
	"github.com/npillmayer/pwdict/internal/logger"
	"github.com/npillmayer/pwdict/internal/metrics"
	"github.com/npillmayer/pwdict/strhash"
	"github.com/npillmayer/pwdict/wordlist"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "pwcheck",
		Usage:   "Classify passwords as weak or strong against a dictionary",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file (.toml, .yaml)",
			},
			&cli.StringFlag{
				Name:    "dictionary",
				Aliases: []string{"d"},
				Usage:   "Word list, one word per line",
			},
			&cli.IntFlag{
				Name:    "multiplier",
				Aliases: []string{"m"},
				Usage:   "Hash multiplier",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address, e.g. :9108",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Classify candidate passwords",
				ArgsUsage: "[password...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "costs",
						Usage: "Print the search cost of every table lookup",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Classify with this many goroutines",
					},
				},
				Action: checkCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print fill statistics of both hash tables",
				Action: statsCommand,
			},
			{
				Name:      "audit",
				Usage:     "Cross-check both hash tables against a reference set",
				ArgsUsage: "[key...]",
				Action:    auditCommand,
			},
		},
		DefaultCommand: "check",
		// exit codes are handled in main
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// session is the loaded state shared by all commands.
type session struct {
	cfg      *config.Config
	index    *pwdict.Index
	metrics  *metrics.Metrics
	shutdown func(context.Context) error
}

func (s *session) close() {
	if s.shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.shutdown(ctx); err != nil {
		slog.Warn("metrics server shutdown", "error", err)
	}
}

// loadConfigWithOverrides loads configuration and applies CLI flag overrides.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("dictionary") {
		cfg.Dictionary.Path = c.String("dictionary")
	}
	if c.IsSet("multiplier") {
		cfg.Dictionary.Multiplier = c.Int("multiplier")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("metrics-addr") {
		cfg.Metrics.Addr = c.String("metrics-addr")
	}
	if c.IsSet("workers") {
		cfg.Classifier.Workers = c.Int("workers")
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openSession(c *cli.Context) (*session, error) {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}
	logger.SetupWriter(c.App.ErrWriter, cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("loader")

	s := &session{cfg: cfg, metrics: metrics.New()}
	if cfg.Metrics.Addr != "" {
		if s.shutdown, err = s.metrics.StartServer(cfg.Metrics.Addr); err != nil {
			return nil, cli.Exit(fmt.Sprintf("metrics server: %v", err), 1)
		}
	}
	chained, probing, err := cfg.Hashers()
	if err != nil {
		s.close()
		return nil, cli.Exit(err.Error(), 2)
	}

	start := time.Now()
	s.index, err = loadDictionary(cfg, chained, probing, s.metrics)
	if err != nil {
		s.close()
		log.Error("dictionary not loaded", "path", cfg.Dictionary.Path, "error", err)
		return nil, cli.Exit(fmt.Sprintf("Dictionary file not usable: %v", err), 1)
	}
	s.metrics.SetIndex(s.index)
	stats := s.index.Stats()
	log.Info("dictionary loaded",
		"path", cfg.Dictionary.Path,
		"words", s.index.Len(),
		"chained_fill", stats.Chained.FillRatio(),
		"probing_fill", stats.Probing.FillRatio(),
		"elapsed", time.Since(start))
	return s, nil
}

func loadDictionary(cfg *config.Config, chained, probing strhash.Hasher, obs pwdict.Observer) (*pwdict.Index, error) {
	f, err := os.Open(cfg.Dictionary.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pwdict.ErrSourceUnavailable, err)
	}
	defer f.Close()
	return wordlist.LoadDictionary(f, wordlist.Options{
		ChainedCapacity: cfg.Dictionary.ChainedCapacity,
		ProbingCapacity: cfg.Dictionary.ProbingCapacity,
		Multiplier:      cfg.Dictionary.Multiplier,
		IndexOptions: []pwdict.IndexOption{
			pwdict.WithChainedHasher(chained),
			pwdict.WithProbingHasher(probing),
			pwdict.WithObserver(obs),
		},
	})
}

func checkCommand(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	candidates := c.Args().Slice()
	if len(candidates) == 0 {
		fmt.Fprintln(c.App.Writer, "Enter the passwords that you want to test (separate with a comma): ")
		if candidates, err = readCandidates(c.App.Reader); err != nil {
			return cli.Exit(fmt.Sprintf("reading passwords: %v", err), 1)
		}
	}
	classifier := &pwdict.Classifier{
		Index:      s.index,
		Multiplier: s.cfg.Dictionary.Multiplier,
		MinLength:  s.cfg.Classifier.MinLength,
		Observer:   s.metrics,
	}
	verdicts, err := classifier.ClassifyAll(c.Context, candidates, s.cfg.Classifier.Workers)
	if err != nil {
		return err
	}
	for _, v := range verdicts {
		printVerdict(c.App.Writer, v, c.Bool("costs"))
	}
	return nil
}

func readCandidates(r io.Reader) ([]string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return wordlist.SplitCandidates(line), nil
}

func printVerdict(w io.Writer, v pwdict.Verdict, costs bool) {
	if costs {
		for _, l := range v.Lookups {
			fmt.Fprintf(w, "Search cost for separate chaining: %d\n", l.Chained.Comparisons)
			fmt.Fprintf(w, "Search cost for linear probing: %d\n", l.Probing.Comparisons)
		}
	}
	strength := "weak"
	if v.Strong {
		strength = "strong"
	}
	fmt.Fprintf(w, "Password: %s is %s\n\n", v.Candidate, strength)
}

func statsCommand(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	stats := s.index.Stats()
	fmt.Fprintf(c.App.Writer, "words loaded: %d\n", s.index.Len())
	for _, ts := range []pwdict.TableStats{stats.Chained, stats.Probing} {
		fmt.Fprintf(c.App.Writer, "%-8s entries=%d capacity=%d used=%d fill=%.3f longest=%d\n",
			ts.Backend, ts.Entries, ts.Capacity, ts.Used, ts.FillRatio(), ts.Longest)
	}
	return nil
}

func auditCommand(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	f, err := os.Open(s.cfg.Dictionary.Path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()
	words, err := wordlist.ReadAll(wordlist.NewReader(f))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	rep := audit.Run(s.index, audit.NewReference(words), s.cfg.Dictionary.Multiplier, c.Args().Slice())
	w := c.App.Writer
	fmt.Fprintf(w, "reference words: %d, keys checked: %d\n", rep.Words, rep.Probes)
	if rep.Probes > 0 {
		fmt.Fprintf(w, "chained comparisons: max=%d avg=%.2f\n", rep.MaxChained, float64(rep.TotalChained)/float64(rep.Probes))
		fmt.Fprintf(w, "probing comparisons: max=%d avg=%.2f\n", rep.MaxProbing, float64(rep.TotalProbing)/float64(rep.Probes))
	}
	for _, ex := range rep.SuffixExamples {
		fmt.Fprintf(w, "also weak by suffix rule: %s\n", ex)
	}
	if rep.OK() {
		fmt.Fprintln(w, "audit ok")
		return nil
	}
	for _, m := range rep.Mismatches {
		fmt.Fprintf(w, "MISMATCH %q: reference=%v chained=%v probing=%v\n",
			m.Key, m.Reference, m.Lookup.Chained.Found, m.Lookup.Probing.Found)
	}
	return cli.Exit(fmt.Sprintf("audit failed with %d mismatches", len(rep.Mismatches)), 1)
}
