package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonathan/candidate-screener/internal/config"
)

const app = "screening_agent"

var (
	cfgFile string

	// settings holds defaults, env bindings and the persistent flags
	settings = newSettings()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "Candidate screening pipeline",
		Long: `screening_agent parses resumes, scores candidates on skills, experience and cultural fit
against a job, and stores a hiring recommendation for each evaluation.

Settings come from an optional config file (--config), SCREENER_* environment variables
and flags, in increasing order of precedence.`,
		SilenceUsage: true,
	}
)

func newSettings() *viper.Viper {
	v, err := config.New()
	if err != nil {
		log.Fatalf("initializing settings: %v", err)
	}
	return v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = settings.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = settings.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// loadConfig reads and validates the layered configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(settings, cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
