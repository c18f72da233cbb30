// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Command injekt resolves a component tree declared in YAML and prints the
// resulting plan: the bindings of every component, its cached fields in
// initialization order and the expression behind every accessor.
//
//	injekt -f app.yaml
//	injekt -config injekt.yaml -dump
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ShikaSD/injekt-sub000"
	"github.com/ShikaSD/injekt-sub000/injektevent"
	"github.com/ShikaSD/injekt-sub000/modulefile"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "injekt:", err)
		os.Exit(1)
	}
}

// Config configures a run. It is read from the file named by -config;
// command line flags override it.
type Config struct {
	// Declarations is the YAML file declaring the component tree.
	Declarations string `yaml:"declarations"`
	// Log selects the event logger: "none", "console" or "zap".
	Log string `yaml:"log"`
	// Verbose logs every resolved binding.
	Verbose bool `yaml:"verbose"`
	// Dump prints the plan as a Go value instead of a report.
	Dump bool `yaml:"dump"`
}

type streams struct {
	Out io.Writer
	Err io.Writer
}

type flags struct {
	config  string
	file    string
	log     string
	verbose bool
	dump    bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	var f flags
	fs := flag.NewFlagSet("injekt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "YAML configuration file")
	fs.StringVar(&f.file, "f", "", "YAML file declaring the component tree")
	fs.StringVar(&f.log, "log", "", `event logger: "none", "console" or "zap"`)
	fs.BoolVar(&f.verbose, "v", false, "log every resolved binding")
	fs.BoolVar(&f.dump, "dump", false, "dump the resolved plan")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	return &f, nil
}

func loadConfig(f *flags) (*Config, error) {
	cfg := Config{Log: "none"}
	if f.config != "" {
		data, err := os.ReadFile(f.config)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", f.config)
		}
	}
	if f.file != "" {
		cfg.Declarations = f.file
	}
	if f.log != "" {
		cfg.Log = f.log
	}
	cfg.Verbose = cfg.Verbose || f.verbose
	cfg.Dump = cfg.Dump || f.dump
	if cfg.Declarations == "" {
		return nil, errors.New("no declarations file given: use -f or the declarations config key")
	}
	return &cfg, nil
}

func newZapLogger(cfg *Config, s *streams) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(s.Err),
		level,
	)
	return zap.New(core)
}

func newEventLogger(cfg *Config, s *streams, zl *zap.Logger) (injektevent.Logger, error) {
	switch cfg.Log {
	case "none", "":
		return injektevent.NopLogger, nil
	case "console":
		return &injektevent.ConsoleLogger{W: s.Err, Verbose: cfg.Verbose}, nil
	case "zap":
		return &injektevent.ZapLogger{Logger: zl}, nil
	default:
		return nil, errors.Errorf("unknown logger %q", cfg.Log)
	}
}

func loadTree(cfg *Config) (*modulefile.Tree, error) {
	return modulefile.LoadFile(cfg.Declarations)
}

func buildPlan(tree *modulefile.Tree, logger injektevent.Logger) (*injekt.Plan, error) {
	return injekt.Build(tree.Root, injekt.WithClasses(tree.Classes...), injekt.WithLogger(logger))
}

func run(args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	c := dig.New()
	for _, ctor := range []interface{}{
		func() *flags { return f },
		func() *streams { return &streams{Out: stdout, Err: stderr} },
		loadConfig,
		newZapLogger,
		newEventLogger,
		loadTree,
		buildPlan,
	} {
		if err := c.Provide(ctor); err != nil {
			return err
		}
	}

	err = c.Invoke(func(cfg *Config, s *streams, zl *zap.Logger, plan *injekt.Plan) error {
		defer zl.Sync() //nolint:errcheck
		if cfg.Dump {
			return dump(s.Out, plan)
		}
		return report(s.Out, plan)
	})
	return dig.RootCause(err)
}
