package cli

import (
	"flag"
	"io"

	"github.com/eshaffer321/chargematch/internal/infrastructure/config"
)

// unset marks a numeric flag that was not given on the command line
const unset = -1

// MatchFlags are the flags of the interactive matcher
type MatchFlags struct {
	ConfigPath   string
	MaxSolutions int
	MaxCharges   int
	Workers      int
	Verbose      bool
	NoHistory    bool
}

// ParseMatchFlags parses matcher flags from args (without the program name)
func ParseMatchFlags(args []string, output io.Writer) (*MatchFlags, error) {
	flags := &MatchFlags{}
	fs := flag.NewFlagSet("chargematch", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&flags.ConfigPath, "config", "", "Configuration file path (default: config.yaml, then environment)")
	fs.IntVar(&flags.MaxSolutions, "max-solutions", unset, "Stop after this many solutions (0 = all)")
	fs.IntVar(&flags.MaxCharges, "max-charges", unset, "Refuse inputs with more charges (0 = unlimited)")
	fs.IntVar(&flags.Workers, "workers", unset, "Parallel per-order enumeration")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&flags.NoHistory, "no-history", false, "Do not record the run in the history database")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// Apply overrides cfg with the flags that were set
func (f *MatchFlags) Apply(cfg *config.Config) {
	if f.MaxSolutions != unset {
		cfg.Matcher.MaxSolutions = f.MaxSolutions
	}
	if f.MaxCharges != unset {
		cfg.Matcher.MaxCharges = f.MaxCharges
	}
	if f.Workers != unset {
		cfg.Matcher.Workers = f.Workers
	}
	if f.NoHistory {
		cfg.Storage.HistoryEnabled = false
	}
	if f.Verbose {
		cfg.Observability.Logging.Level = "debug"
	}
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	ConfigPath string
	Port       int
	Verbose    bool
	NoHistory  bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags(args []string, output io.Writer) (*ServeFlags, error) {
	flags := &ServeFlags{}
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&flags.ConfigPath, "config", "", "Configuration file path (default: config.yaml, then environment)")
	fs.IntVar(&flags.Port, "port", 0, "Port to listen on (default from config)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&flags.NoHistory, "no-history", false, "Disable run history and its endpoints")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// Apply overrides cfg with the flags that were set
func (f *ServeFlags) Apply(cfg *config.Config) {
	if f.Port > 0 {
		cfg.API.Port = f.Port
	}
	if f.NoHistory {
		cfg.Storage.HistoryEnabled = false
	}
	if f.Verbose {
		cfg.Observability.Logging.Level = "debug"
	}
}

// LoadConfig loads path when given, otherwise config.yaml with an
// environment fallback.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadOrEnv(), nil
	}
	return config.Load(path)
}
