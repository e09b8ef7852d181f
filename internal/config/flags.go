package config

import (
	"flag"
	"fmt"
	"strings"
)

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map splits the collected pairs. Later pairs win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// Flags are the options every command understands.
type Flags struct {
	Config  string
	Debug   bool
	Seed    int64
	Out     string
	Width   int
	Height  int
	LogFile string
	Set     KVList
}

// Register binds the common flags to fs.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.Int64Var(&f.Seed, "seed", 0, "map seed (0 keeps the configured seed)")
	fs.StringVar(&f.Out, "out", "", "output directory")
	fs.IntVar(&f.Width, "width", 0, "bitmap width")
	fs.IntVar(&f.Height, "height", 0, "bitmap height")
	fs.StringVar(&f.LogFile, "log", "", "rotating log file")
	fs.Var(&f.Set, "set", "map parameter override in key=value form (repeatable)")
	return f
}

func (f *Flags) apply(cfg *Config) error {
	if f == nil {
		return nil
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Out != "" {
		cfg.Output.Dir = f.Out
	}
	if f.Width > 0 {
		cfg.Map.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Map.Height = f.Height
	}
	if f.Seed != 0 {
		cfg.Map.Seed = f.Seed
	}
	if len(f.Set) > 0 {
		m, err := cfg.Map.With(f.Set.Map())
		if err != nil {
			return err
		}
		cfg.Map = m
	}
	return nil
}
