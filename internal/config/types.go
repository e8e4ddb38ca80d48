package config

import "time"

// Config is the top-level site configuration, corresponding to .docsite.yml.
type Config struct {
	SiteName       string       `yaml:"site_name" koanf:"site_name"`
	DocsDir        string       `yaml:"docs_dir" koanf:"docs_dir"`
	OutputDir      string       `yaml:"output_dir" koanf:"output_dir"`
	Language       string       `yaml:"language" koanf:"language"`
	Locale         string       `yaml:"locale" koanf:"locale"`
	Version        string       `yaml:"version" koanf:"version"`
	Versions       []string     `yaml:"versions" koanf:"versions"`
	ShowDoc        bool         `yaml:"show_doc" koanf:"show_doc"`
	WrapperClass   string       `yaml:"wrapper_class" koanf:"wrapper_class"`
	Logo           string       `yaml:"logo" koanf:"logo"`
	Include        []string     `yaml:"include" koanf:"include"`
	Exclude        []string     `yaml:"exclude" koanf:"exclude"`
	BenchmarkPages []string     `yaml:"benchmark_pages" koanf:"benchmark_pages"`
	HeaderOffset   float64      `yaml:"header_offset" koanf:"header_offset"`
	Stars          StarsConfig  `yaml:"stars" koanf:"stars"`
	Server         ServerConfig `yaml:"server" koanf:"server"`
	Wasm           WasmConfig   `yaml:"wasm" koanf:"wasm"`
}

// StarsConfig controls the GitHub star badge.
type StarsConfig struct {
	Repo         string        `yaml:"repo" koanf:"repo"`
	APIBase      string        `yaml:"api_base" koanf:"api_base"`
	CountKey     string        `yaml:"count_key" koanf:"count_key"`
	FetchTimeKey string        `yaml:"fetch_time_key" koanf:"fetch_time_key"`
	TTL          time.Duration `yaml:"ttl" koanf:"ttl"`
	Timeout      time.Duration `yaml:"timeout" koanf:"timeout"`
	CacheDB      string        `yaml:"cache_db" koanf:"cache_db"`
}

// ServerConfig holds settings for `docsite serve`.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool `yaml:"watch" koanf:"watch"`
}

// WasmConfig points at a prebuilt browser module (GOOS=js GOARCH=wasm ./wasm).
// When Module is empty the pages use the bundled script instead.
type WasmConfig struct {
	Module string `yaml:"module" koanf:"module"`
	// ExecJS overrides the wasm_exec.js shipped with the Go toolchain.
	ExecJS string `yaml:"exec_js" koanf:"exec_js"`
}
