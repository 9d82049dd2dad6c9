package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/dbdbedit/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags listed
// below are looked at, so -c/-config stays with parseJson.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-k", "-l", "-m", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.CatalogURL, "a", cfg.CatalogURL, "base URL of the catalog site")
	fs.StringVar(&cfg.SnapshotFile, "s", cfg.SnapshotFile, "page snapshot file (YAML or JSON)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.CSRFToken, "k", cfg.CSRFToken, "CSRF token override")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.AutocompleteMinLength, "m", cfg.AutocompleteMinLength, "minimum autocomplete query length")
	fs.BoolVar(&cfg.ReplaceSingle, "r", cfg.ReplaceSingle, "replace the tag of a single-valued set on select")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// a JSON duration finer than a second survives unless -t is given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
