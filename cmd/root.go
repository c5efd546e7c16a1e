package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/Manu343726/opscrape/cmd/tools"
	"github.com/Manu343726/opscrape/pkg/config"
	"github.com/Manu343726/opscrape/pkg/fetch"
	"github.com/Manu343726/opscrape/pkg/isa/emit"
	"github.com/Manu343726/opscrape/pkg/isa/pipeline"
	"github.com/Manu343726/opscrape/pkg/logging"
	"github.com/Manu343726/opscrape/pkg/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// State shared by all the commands of a root command
type app struct {
	fs      afero.Fs
	client  *http.Client
	viper   *viper.Viper
	cfgFile string

	config *config.Config
	logger *slog.Logger
	closer io.Closer
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCmd(afero.NewOsFs(), http.DefaultClient)

// Builds the opscrape command tree. Documents, config and log files are
// read from fs.
func NewRootCmd(fs afero.Fs, client *http.Client) *cobra.Command {
	a := &app{
		fs:     fs,
		client: client,
		viper:  viper.New(),
	}

	config.SetDefaults(a.viper)

	root := &cobra.Command{
		Use:   "opscrape",
		Short: "Generate opcode tables from instruction set specifications",
		Long: `Opscrape reads the instruction reference of a specification document (by default
the JVM instruction set chapter of the Java Virtual Machine Specification) and
generates the opcode declarations and the instruction enumeration of the
instruction set as source code.

The document can be given as an http(s) URL, a file:// URL or a local path.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.init,
		PersistentPostRunE: a.close,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.opscrape.yaml)")
	flags.StringP("target", "t", "", "language of the generated code")
	flags.String("enum", "", "name of the generated instruction enumeration")
	flags.String("timeout", "", "maximum time spent fetching the document")
	flags.String("log-level", "", "minimum level of console log messages: debug, info, warn or error")
	flags.String("log-file", "", "also append JSON log messages to this file")

	a.bindFlag("target", flags.Lookup("target"))
	a.bindFlag("enum", flags.Lookup("enum"))
	a.bindFlag("timeout", flags.Lookup("timeout"))
	a.bindFlag("log.level", flags.Lookup("log-level"))
	a.bindFlag("log.file", flags.Lookup("log-file"))

	cobra.CheckErr(root.RegisterFlagCompletionFunc("target", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return utils.Map(emit.Targets(), func(t emit.Target) string { return string(t) }), cobra.ShellCompDirectiveNoFileComp
	}))

	root.AddCommand(
		a.generateCmd(),
		a.extractCmd(),
		a.checkCmd(),
		a.showCmd(),
		a.browseCmd(),
		tools.NewToolsCmd(a.fs, func() *config.Config { return a.config }),
	)

	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) bindFlag(key string, flag *pflag.Flag) {
	cobra.CheckErr(a.viper.BindPFlag(key, flag))
}

// Reads in config file and ENV variables, then sets up logging
func (a *app) init(cmd *cobra.Command, args []string) error {
	a.viper.SetFs(a.fs)

	if a.cfgFile != "" {
		a.viper.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.viper.AddConfigPath(home)
		}

		a.viper.SetConfigType("yaml")
		a.viper.SetConfigName(".opscrape")
	}

	a.viper.SetEnvPrefix(config.EnvPrefix)
	a.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.viper.AutomaticEnv()

	if err := a.viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || a.cfgFile != "" {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	c, err := config.Load(a.viper)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Setup(c.Log, cmd.ErrOrStderr(), a.fs)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	if used := a.viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}

	a.config = c
	a.logger = logger
	a.closer = closer
	return nil
}

func (a *app) close(cmd *cobra.Command, args []string) error {
	if a.closer == nil {
		return nil
	}

	return a.closer.Close()
}

// Returns the document given as the only positional argument or, if
// omitted, the configured source
func (a *app) document(ctx context.Context, args []string) (string, error) {
	source := a.config.Source
	if len(args) > 0 {
		source = args[len(args)-1]
	}

	timeout, err := a.config.FetchTimeout()
	if err != nil {
		return "", err
	}

	a.logger.Info("fetching document", "source", source)
	return fetch.WithTimeout(ctx, fetch.NewSource(a.client, a.fs), source, timeout)
}

func (a *app) pipeline() (*pipeline.Pipeline, error) {
	options := a.config.PipelineOptions()
	options.Logger = a.logger
	return pipeline.New(options)
}

// Fetches the document and runs the whole pipeline on it
func (a *app) run(ctx context.Context, args []string) (*pipeline.Result, *pipeline.Pipeline, error) {
	text, err := a.document(ctx, args)
	if err != nil {
		return nil, nil, err
	}

	p, err := a.pipeline()
	if err != nil {
		return nil, nil, err
	}

	result, err := p.Run(text)
	if err != nil {
		return nil, nil, err
	}

	return result, p, nil
}
