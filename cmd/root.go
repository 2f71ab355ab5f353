package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MuradEyvazli/vizyon-haber/internal/config"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vizyon-haber",
	Short: "Vizyon Haber aggregation gateway",
	Long:  "Multi-provider Turkish news aggregation gateway with quota tracking, caching and fallback content.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

// envBindings maps config keys onto the environment variables the previous
// deployment used, so existing .env files keep working.
var envBindings = map[string]string{
	"app.environment":            "APP_ENV",
	"server.port":                "PORT",
	"providers.newsapi.api_key":  "NEWS_API_KEY",
	"providers.currents.api_key": "CURRENTS_API_KEY",
	"providers.newsdata.api_key": "NEWSDATA_API_KEY",
	"providers.gnews.api_key":    "GNEWS_API_KEY",
	"redis.addr":                 "REDIS_ADDR",
}

func initConfig() {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vizyon-haber")
		v.AddConfigPath("configs")
	}
	for key, env := range envBindings {
		v.BindEnv(key, env)
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	// single extra origin via env, kept from the previous deployment
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		appCfg.Server.CORSOrigins = append(appCfg.Server.CORSOrigins, origin)
	}

	appCfg.FillDefaults()
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}
