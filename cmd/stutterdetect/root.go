package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Atifue/hacknight-2025-fall/detect"
	"github.com/Atifue/hacknight-2025-fall/logging"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "stutterdetect",
	Short: "Detect speech disfluencies in audio recordings",
	Long: `Stutterdetect analyzes a recording for stutter-like disfluencies: word
repetitions, part-word sound repetitions, prolongations, and silent blocks.
It combines a word-level transcript with direct acoustic analysis of the
waveform.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

func setupLogging() {
	if verbose {
		logging.SetLevel(logging.DebugLevel)
	}
	if quiet {
		logging.SetLevel(logging.ErrorLevel)
	}
}

// loadConfig layers an optional config file over the defaults.
func loadConfig() (detect.Config, error) {
	cfg := detect.DefaultConfig()
	if cfgFile == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file with detection thresholds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
