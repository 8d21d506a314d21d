package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var red = color.New(color.FgRed).SprintfFunc()

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "monkey",
		Short: "Lexer and parser for the monkey programming language",
		Long: `Lex and parse monkey programs.

Run without arguments on a terminal to start an interactive session that
prints the parsed form of each line.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cfgFile); err != nil {
				return err
			}
			return processGlobalFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !shouldRunRepl(cmd, args) {
				return cmd.Help()
			}
			return runRepl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), true)
		},
	}
	cmd.SetVersionTemplate("monkey {{.Version}} (" + commit + ", " + date + ")\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.monkey.yaml)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringP("output", "o", "text", "Output format: text or json")
	flags.String("history-file", "", "REPL history file (default is $HOME/.monkey_history)")
	for _, name := range []string{"no-color", "log-level", "output", "history-file"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))

	cmd.AddCommand(
		newReplCmd(),
		newTokensCmd(),
		newAstCmd(),
		newCheckCmd(),
	)
	return cmd
}

// initConfig reads in the config file and MONKEY_ environment variables.
func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".monkey")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("monkey")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags(cmd *cobra.Command) error {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
	logger, err := newLogger(cmd.ErrOrStderr(), viper.GetString("log-level"), color.NoColor)
	if err != nil {
		return err
	}
	log.Logger = logger
	if file := viper.ConfigFileUsed(); file != "" {
		log.Debug().Str("file", file).Msg("config loaded")
	}
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fatal(err)
	}
}
