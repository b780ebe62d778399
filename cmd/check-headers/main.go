package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/spf13/pflag"

	"github.com/spinedocs/cichecks/config"
	"github.com/spinedocs/cichecks/header"
)

// Version is overridden by go build -X
var Version string

const defaultConfigFile = ".cichecks.yaml"

var errHeadersMissing = errors.New("files are missing required headers")
var errHeadersAdded = errors.New("headers were added")

func main() {
	if err := run(os.Args); err != nil {
		if !errors.Is(err, errHeadersMissing) && !errors.Is(err, errHeadersAdded) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(nil)

	var help bool
	var version bool
	var fix bool
	var cfgFile string
	var prefix string
	flags := pflag.NewFlagSet("check-headers", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.BoolVar(&fix, "fix", false, "add missing headers in place")
	flags.StringArrayVar(&cfg.HeaderLines, "header", cfg.HeaderLines, "required header `line`")
	flags.IntVar(&cfg.HeaderSearchLimit, "search-limit", cfg.HeaderSearchLimit, "how many leading `lines` to search")
	flags.StringVar(&prefix, "comment-prefix", "# ", "comment `prefix` for inserted headers")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	files := flags.Args()[1:]

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}

	fileCfg, err := readConfigFile(cfgFile)
	if err != nil {
		return err
	}
	if fileCfg != nil {
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no files to check")
	}

	hcfg := header.Config{
		Lines:         cfg.HeaderLines,
		SearchLimit:   cfg.HeaderSearchLimit,
		CommentPrefix: prefix,
	}

	if fix {
		return fixFiles(cfg, hcfg, files)
	}
	return checkFiles(cfg, hcfg, files)
}

func checkFiles(cfg config.Config, hcfg header.Config, files []string) error {
	var missing []string
	for _, path := range files {
		ok, err := header.CheckFile(path, hcfg)
		if err != nil {
			return err
		}
		if !ok {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		cfg.Errorf("The following files are missing required SPDX headers:")
		for _, path := range missing {
			cfg.Errorf("  - %s", path)
		}
		cfg.Errorf("\nRequired headers (at top of file):")
		for _, line := range hcfg.Lines {
			cfg.Errorf("  %s", line)
		}
		return errHeadersMissing
	}
	cfg.Printf("All files have required SPDX headers")
	return nil
}

func fixFiles(cfg config.Config, hcfg header.Config, files []string) error {
	var modified []string
	for _, path := range files {
		changed, err := header.FixFile(path, hcfg)
		if err != nil {
			return err
		}
		if changed {
			modified = append(modified, path)
		}
	}
	if len(modified) > 0 {
		cfg.Printf("Added SPDX headers to:")
		for _, path := range modified {
			cfg.Printf("  - %s", path)
		}
		// nonzero exit so pre-commit reruns on the modified files
		return errHeadersAdded
	}
	return nil
}

func readConfigFile(path string) (*config.Config, error) {
	p := path
	if p == "" {
		p = defaultConfigFile
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) && path == "" {
			return nil, nil
		}
		return nil, err
	}
	cfg := &config.Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return cfg, nil
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`check-headers validates SPDX license headers in source files.

USAGE
  check-headers [flags] <file>...

FLAGS
%s`, flags.FlagUsages())
}
