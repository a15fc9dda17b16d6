package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/blocks/ast"
	"github.com/dhamidi/blocks/forest"
	"github.com/dhamidi/blocks/lang"
	"github.com/dhamidi/blocks/lang/sexpr"
)

var version = "0.1.0"

// app is the state shared by all subcommands.
type app struct {
	config   *viper.Viper
	registry *lang.Registry
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{
		config:   viper.New(),
		registry: lang.NewRegistry(sexpr.Language()),
	}
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "blocks",
		Short:        "Keep block editor trees in sync with source text",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd, configFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default .blocks.yaml in the working directory)")
	flags.CountP("verbose", "v", "log more; repeat for debug output")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.Bool("no-color", false, "disable colored output")
	flags.Int("describe-depth", 1, "how many levels of children descriptions mention")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newFmtCmd(a))
	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newNavCmd(a))
	rootCmd.AddCommand(newDescribeCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

// configure layers flags over BLOCKS_* environment variables over the
// config file, then sets up logging and color from the result.
func (a *app) configure(cmd *cobra.Command, configFile string) error {
	v := a.config
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".blocks")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("BLOCKS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var logFile *string
	if path := v.GetString("log-file"); path != "" {
		logFile = &path
	}
	commonlog.Configure(v.GetInt("verbose"), logFile)

	if v.GetBool("no-color") {
		color.NoColor = true
	}
	return nil
}

func (a *app) color() bool {
	return !color.NoColor && !a.config.GetBool("no-color")
}

// parseFile reads path with the language its extension selects.
func (a *app) parseFile(path string) ([]ast.Node, error) {
	l, ok := a.registry.ForFile(path)
	if !ok {
		return nil, fmt.Errorf("%s: no language for file (known: %s)", path, strings.Join(a.registry.IDs(), ", "))
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	nodes, err := l.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}

func (a *app) loadForest(path string) (*forest.Forest, error) {
	nodes, err := a.parseFile(path)
	if err != nil {
		return nil, err
	}
	return forest.New(nodes)
}

// parsePosition reads a "line:column" pair, both 0-based.
func parsePosition(s string) (ast.Position, error) {
	line, col, ok := strings.Cut(s, ":")
	if !ok {
		return ast.Position{}, fmt.Errorf("position %q: want line:column", s)
	}
	l, err := strconv.Atoi(line)
	if err != nil || l < 0 {
		return ast.Position{}, fmt.Errorf("position %q: bad line", s)
	}
	c, err := strconv.Atoi(col)
	if err != nil || c < 0 {
		return ast.Position{}, fmt.Errorf("position %q: bad column", s)
	}
	return ast.Position{Line: l, Column: c}, nil
}
