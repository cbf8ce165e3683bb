/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/yuque-dump/credentials"
	"github.com/toothbrush/yuque-dump/internal/termfmt"
	"github.com/toothbrush/yuque-dump/yuque"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"
)

const defaultConfig = "~/.config/yuque-dump.yaml"

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	// Where we found the config, if we did.
	ConfigActual string

	BaseURL         string
	CredentialsFile string
	LocalStore      string
	RequestTimeout  time.Duration

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "yuque-dump",
	Short: "Export Yuque knowledge bases to local Markdown",
	Long: `
Ever wanted your Yuque notes somewhere you can grep them?  This tool exports the knowledge bases
you pick to a directory of Markdown files, and downloads the images they embed alongside.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		termfmt.SetEnabled(term.IsTerminal(int(os.Stdout.Fd())))

		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("yuque-dump: failed to initialise config: %w", err)
		}
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: "+defaultConfig+", respects YUQUE_DUMP_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringVar(&BaseURL, "base-url", yuque.DefaultBaseURL, "Yuque REST API root")
	rootCmd.PersistentFlags().StringVar(&CredentialsFile, "credentials-file", credentials.DefaultFile, "file holding 'namespace&token'; you'll be asked for both if it doesn't exist")
	rootCmd.PersistentFlags().StringVar(&LocalStore, "store", "./yuque", "location to save exported knowledge bases")
	rootCmd.PersistentFlags().DurationVar(&RequestTimeout, "request-timeout", 0, "give up on an API request after this long (0: wait forever)")
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := true
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("YUQUE_DUMP_CONFIG")
		if envConfig != "" {
			Config = envConfig
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = defaultConfig
			explicit = false
		}
	}

	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("yuque-dump: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("yuque-dump: specified config file does not exist: %w", err)
		}
		// the config file is optional; flags and defaults will do.
		debugLog("No config file at %s, carrying on with flags.\n", Config)
		return nil
	}

	ParsedConfig, err = loadConfig(Config)
	if err != nil {
		return err
	}
	ConfigActual = Config

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("yuque-dump: failed to bind flags: %w", err)
	}

	return nil
}

func loadConfig(path string) (YamlConfig, error) {
	var parsed YamlConfig

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return parsed, fmt.Errorf("yuque-dump: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &parsed); err != nil {
		return parsed, fmt.Errorf("yuque-dump: issue parsing config file: %w", err)
	}

	return parsed, nil
}

type YamlConfig struct {
	AllRepos    *bool `yaml:"all-repos"`
	FrontMatter *bool `yaml:"front-matter"`
	Progress    *bool `yaml:"progress"`
	Prune       *bool `yaml:"prune"`
	WithVCR     *bool `yaml:"with-vcr"`
	Workers     *int  `yaml:"workers"`

	BaseURL         string   `yaml:"base-url"`
	CredentialsFile string   `yaml:"credentials-file"`
	RepoType        string   `yaml:"repo-type"`
	RequestTimeout  string   `yaml:"request-timeout"`
	StorePath       string   `yaml:"store"`
	Repos           []string `yaml:"repos"`
}

// Bind each config file value onto its cobra flag, unless the flag was given on the command line.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("yuque-dump: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// the flag is unknown, which is legitimate: `list repos` has no --prune flag, but your
			// YAML file may well set it.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			switch p := field.Value().(type) {
			case *bool:
				if p != nil {
					if err := cmd.Flags().Set(key, fmt.Sprintf("%v", *p)); err != nil {
						return fmt.Errorf("yuque-dump: bad value for %s: %w", key, err)
					}
				}
			case *int:
				if p != nil {
					if err := cmd.Flags().Set(key, fmt.Sprintf("%d", *p)); err != nil {
						return fmt.Errorf("yuque-dump: bad value for %s: %w", key, err)
					}
				}
			default:
				return fmt.Errorf("yuque-dump: found unrecognised field: %+v", field.Name())
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("yuque-dump: found unrecognised field: %+v", field.Name())
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("yuque-dump: bad value for %s: %w", key, err)
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("yuque-dump: found unrecognised field: %+v", field.Name())
			}
			for _, s := range ss {
				// yes, repeatedly calling Set() appends to the slice...
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("yuque-dump: bad value for %s: %w", key, err)
				}
			}

		default:
			return fmt.Errorf("yuque-dump: found unrecognised field: %+v", field.Name())
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("yuque-dump: execution error: %w", err)
	}

	return nil
}
