package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/spinedocs/cichecks/config"
	"github.com/spinedocs/cichecks/runner"
	"github.com/spinedocs/cichecks/signoff"
	"github.com/spinedocs/cichecks/vcs/gitcli"
)

// Version is overridden by go build -X
var Version string

const defaultConfigFile = ".cichecks.yaml"

func main() {
	if err := run(os.Args); err != nil {
		cf := runner.CheckFailure{}
		if !errors.As(err, &cf) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(nil)

	var help bool
	var version bool
	var cfgFile string
	var commitFile string
	var checkCommits []string
	flags := pflag.NewFlagSet("check-dco", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.StringVarP(&cfg.Base, "base", "b", "", "check commits since `ref` (defaults to the main branch)")
	flags.StringVarP(&commitFile, "commit-file", "f", "", "validate the message in `file` instead of git history (commit-msg hook mode, \"-\" for stdin)")
	flags.StringArrayVar(&checkCommits, "check-commit", nil, "only validate the provided commit `body`")
	flags.BoolVar(&cfg.CaseSensitiveEmails, "case-sensitive-email", false, "compare sign-off emails case-sensitively")
	flags.BoolVar(&cfg.NoMergeExemption, "no-merge-exemption", false, "require sign-offs on merge commits too")
	flags.BoolVar(&cfg.NoAuthorMatch, "no-author-match", false, "accept any well-formed sign-off regardless of author")
	flags.BoolVar(&cfg.AllowEmpty, "allow-empty", false, "treat an empty commit range as passing")
	flags.StringArrayVar(&cfg.Branches, "branch", []string{"main", "master"}, "main branch candidate `name`s")
	flags.BoolVar(&cfg.InCI, "ci", false, "run in CI mode")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	args := flags.Args()[1:]

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}
	if !cfg.InCI {
		if env := os.Getenv("CI"); env == "true" || env == "1" || env == "yes" {
			cfg.InCI = true
		}
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
	branchesSet := false
	if fl := flags.Lookup("branch"); fl != nil && fl.Changed {
		branchesSet = true
	}
	if fileCfg != nil && fileCfg.Branches != nil {
		branchesSet = true
	}
	cfg.BranchesSet = branchesSet

	if err := cfg.Validate(); err != nil {
		return err
	}

	// a commit-msg hook passes the message file as the only argument
	if commitFile == "" && len(args) == 1 {
		commitFile = args[0]
	}

	git := gitcli.New(cfg, "")
	rnr := runner.New(cfg, git)
	ctx := context.Background()

	if cfg.InCI {
		if err := git.EnsureVersion(ctx); err != nil {
			return err
		}
	}

	var results signoff.Results
	switch {
	case commitFile != "":
		results, err = checkMessageFile(ctx, rnr, commitFile)
	case len(checkCommits) > 0:
		results, err = rnr.CheckSubjects(ctx, checkCommits)
	default:
		results, err = rnr.CheckRange(ctx, cfg.Base)
	}

	if err != nil {
		if errors.Is(err, signoff.ErrNoCommits) {
			if cfg.AllowEmpty {
				cfg.Errorf("warning: no commits to check, passing trivially")
				return nil
			}
			return err
		}
		cf := runner.CheckFailure{}
		if errors.As(err, &cf) {
			if werr := cf.WriteFailure(cfg.Term.Stdout); werr != nil {
				fmt.Fprintln(os.Stderr, "failed to write failure information:", werr)
			}
			cfg.Errorf("\nPlease sign off your commits using:\n\n  git commit -s\n\nOr amend your last commit:\n\n  git commit --amend -s\n\nThis adds a 'Signed-off-by' line certifying you agree to the DCO.")
		}
		return err
	}
	cfg.Printf("OK: %d commit(s) have a DCO sign-off", len(results))
	return nil
}

func checkMessageFile(ctx context.Context, rnr *runner.Runner, path string) (signoff.Results, error) {
	if path == "-" {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return nil, errors.New("no commit message piped to stdin")
		}
		return rnr.CheckMessage(ctx, os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rnr.CheckMessage(ctx, f)
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
	cfg.Printf(`check-dco validates Developer Certificate of Origin sign-offs.

With no arguments, every commit since the main branch is checked for a
"Signed-off-by" trailer matching the commit author. As a commit-msg hook,
pass the message file as the only argument.

USAGE
  check-dco [flags] [commit-msg-file]

FLAGS
%s`, flags.FlagUsages())
}
