// Command cfront drives the lex → parse → validate pipeline over one or
// more source files. It is a thin external collaborator (spec.md §1's
// "out of scope"): it imports the core packages but contains none of
// their logic, matching the CLI surface of spec.md §6.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/diag"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/lexer"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/parser"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/symtab"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/validator"
)

// config holds the resolved CLI flag values. Core packages never see
// this struct; they take explicit parameters.
type config struct {
	lexOnly     bool
	compileOnly bool
	output      string
	warnAll     bool
	warnAsError bool
	debug       bool
	optimize    bool
	includes    []string
}

var cfg config

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(255)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cfront [flags] FILE...",
		Short:         "lex, parse, and constant-fold C-like source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE:          runPipeline,
	}
	flags := cmd.Flags()
	flags.BoolVarP(&cfg.lexOnly, "lex-only", "l", false, "stop after lexing and print tokens")
	flags.BoolVarP(&cfg.compileOnly, "compile-only", "c", false, "compile only, no link")
	flags.StringVarP(&cfg.output, "output", "o", "", "output file path")
	flags.BoolVar(&cfg.warnAll, "Wall", false, "enable all warnings")
	flags.BoolVar(&cfg.warnAsError, "Werror", false, "treat warnings as errors")
	flags.BoolVarP(&cfg.debug, "debug", "g", false, "emit debug info / stack traces on internal errors")
	flags.BoolVarP(&cfg.optimize, "optimize", "O", false, "enable optimization (parallel constant folding)")
	flags.StringArrayVarP(&cfg.includes, "include", "I", nil, "header search path")
	return cmd
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

func runPipeline(cmd *cobra.Command, args []string) error {
	log := newLogger()
	hadErrors := false

	for _, path := range args {
		if err := processFile(log, path); err != nil {
			return err
		}
		if fileHadDiagnostics {
			hadErrors = true
		}
	}

	if hadErrors && cfg.warnAsError {
		log.Error("warnings promoted to errors")
		return fmt.Errorf("compilation failed")
	}
	if hadErrors {
		return fmt.Errorf("compilation failed")
	}
	log.Info("compilation succeeded")
	return nil
}

// fileHadDiagnostics is set by processFile; a package-level flag keeps
// runPipeline's signature aligned with cobra's RunE contract while
// still reporting per-file status to the aggregate exit-code decision.
var fileHadDiagnostics bool

func processFile(log *logrus.Logger, path string) error {
	fileHadDiagnostics = false
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tokens, lexDiags := lexer.Lex(source)
	reportDiagnostics(log, path, lexDiags.Items(), logrus.WarnLevel)
	if lexDiags.HasErrors() {
		fileHadDiagnostics = true
	}

	if cfg.lexOnly {
		for _, t := range tokens {
			fmt.Println(t.String())
		}
		return nil
	}

	prog, parseDiags, perr := parser.Parse(tokens)
	if perr != nil {
		if cfg.debug {
			log.Errorf("%+v", perr)
		} else {
			log.Error(perr)
		}
		return perr
	}
	reportDiagnostics(log, path, parseDiags.Items(), logrus.WarnLevel)
	if parseDiags.HasErrors() {
		fileHadDiagnostics = true
	}

	validated, validateDiags := validator.Validate(prog, symtab.New(), cfg.optimize)
	reportDiagnostics(log, path, validateDiags.Items(), logrus.ErrorLevel)
	if validateDiags.HasErrors() {
		fileHadDiagnostics = true
	}

	if cfg.debug {
		fmt.Println(validated.Print())
	}
	return nil
}

func reportDiagnostics(log *logrus.Logger, path string, items []*diag.Diagnostic, level logrus.Level) {
	for _, d := range items {
		entry := log.WithField("file", path)
		if level == logrus.ErrorLevel {
			entry.Error(d)
		} else if cfg.warnAll {
			entry.Warn(d)
		}
	}
}
