package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	autolink "github.com/riverfjs/autolink-go"
	"github.com/riverfjs/autolink-go/internal/config"
)

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "autolink [file]",
	Short: "Link known note names in Markdown",
	Long: `Reads Markdown from a file or stdin and turns mentions of known
things into links to their keys. Code and math blocks, existing links,
images and inline code are left alone.

Things come from a YAML file (--entities) or a SQLite database (--db).`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAutolink,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: autolink.yaml)")
	rootCmd.Flags().StringP("entities", "e", "", "YAML file with things to link")
	rootCmd.Flags().String("db", "", "SQLite database with a things(key, alias) table")
	rootCmd.Flags().String("query", "", "Query returning key, alias rows (with --db)")
	rootCmd.Flags().BoolP("case-insensitive", "i", false, "Also match aliases with a lowercased first letter")
	rootCmd.Flags().IntP("concurrency", "j", 1, "Lines linked in parallel")
	rootCmd.Flags().Duration("timeout", 0, "Stop linking after this long; remaining lines pass through")
	rootCmd.Flags().BoolP("verbose", "v", false, "Debug logging")

	viper.BindPFlag("entities", rootCmd.Flags().Lookup("entities"))
	viper.BindPFlag("database", rootCmd.Flags().Lookup("db"))
	viper.BindPFlag("query", rootCmd.Flags().Lookup("query"))
	viper.BindPFlag("case_insensitive", rootCmd.Flags().Lookup("case-insensitive"))
	viper.BindPFlag("concurrency", rootCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "autolink: %v\n", err)
		os.Exit(1)
	}
}

func runAutolink(cmd *cobra.Command, args []string) error {
	cfg := config.C

	logger, err := autolink.NewConsoleLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()
	autolink.SetLogger(logger)

	source, closeSource, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := autolink.New(source,
		autolink.WithCaseInsensitive(cfg.CaseInsensitive),
		autolink.WithConcurrency(cfg.Concurrency),
	)
	// the index is built before the deadline starts so that a short timeout
	// only limits linking
	if err := p.Refresh(ctx); err != nil {
		return err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	out, stats, err := p.ProcessLines(ctx, strings.Split(input, "\n"))
	if err != nil {
		return err
	}
	logger.Debug("done",
		zap.Int("lines", stats.Lines),
		zap.Int("linked", stats.Linked),
		zap.Int("links", stats.Links),
		zap.Int("failed", stats.Failed),
		zap.Int("truncated", stats.Truncated),
	)

	_, err = io.WriteString(cmd.OutOrStdout(), strings.Join(out, "\n"))
	return err
}

func openSource(cfg config.Config) (autolink.EntitySource, func(), error) {
	switch {
	case cfg.Entities != "" && cfg.Database != "":
		return nil, nil, errors.New("use either --entities or --db, not both")
	case cfg.Entities != "":
		return autolink.NewYAMLSource(cfg.Entities), func() {}, nil
	case cfg.Database != "":
		src, err := autolink.OpenSQLiteSource(cfg.Database, cfg.Query)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close() }, nil
	default:
		return nil, nil, errors.New("no things to link: set --entities or --db")
	}
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
