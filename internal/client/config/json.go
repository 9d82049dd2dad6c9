package config

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/dbdbedit/internal/flagx"
	"github.com/dmitrijs2005/dbdbedit/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent keys leave the
// current value untouched.
type JsonConfig struct {
	CatalogURL            string          `json:"catalog_url"`
	SnapshotFile          string          `json:"snapshot_file"`
	RequestTimeout        *timex.Duration `json:"request_timeout"`
	CSRFToken             string          `json:"csrf_token"`
	LogLevel              string          `json:"log_level"`
	AutocompleteMinLength *int            `json:"autocomplete_min_length"`
	ReplaceSingle         *bool           `json:"replace_single"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on read
// or decode errors; a broken config file is a start-up failure.
func parseJson(cfg *Config) {
	path := flagx.JSONConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.CatalogURL != "" {
		cfg.CatalogURL = jc.CatalogURL
	}
	if jc.SnapshotFile != "" {
		cfg.SnapshotFile = jc.SnapshotFile
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CSRFToken != "" {
		cfg.CSRFToken = jc.CSRFToken
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.AutocompleteMinLength != nil {
		cfg.AutocompleteMinLength = *jc.AutocompleteMinLength
	}
	if jc.ReplaceSingle != nil {
		cfg.ReplaceSingle = *jc.ReplaceSingle
	}
}
