// Package config provides flag-driven configuration for the searchd
// front door. No environment variables are consulted; every value has a
// default and may be overridden only by an explicit flag.
package config

import "flag"

// Config holds the values the CLI and HTTP front door need to construct a
// search.Server and serve it.
type Config struct {
	// Addr is the HTTP listen address for the serve subcommand.
	Addr string

	// StopWords is a whitespace-delimited stop-word list.
	StopWords string

	// Shards is the shard count the ranking engine's concurrent
	// accumulator uses under a parallel policy.
	Shards int
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Addr:      ":8085",
		StopWords: "",
		Shards:    8,
	}
}

// Parse parses args (typically os.Args[1:]) into a Config starting from
// Default, using fs so callers (cobra subcommands) can share a FlagSet
// with their own additional flags.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.StopWords, "stopwords", cfg.StopWords, "whitespace-delimited stop-word list")
	fs.IntVar(&cfg.Shards, "shards", cfg.Shards, "shard count for the parallel ranking accumulator")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
