package cmd

import "github.com/spf13/viper"

// Settings holds tool-level flag defaults sourced from LDCHECK_*
// environment variables, so CI workflows can configure the tool
// without threading flags through every step. Registry configuration
// is separate and loaded explicitly per run.
type Settings struct {
	Debug  bool
	Output string
	Root   string
}

// loadSettings reads settings from the environment.
func loadSettings() Settings {
	v := viper.New()
	v.SetEnvPrefix("LDCHECK")
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("output", "")
	v.SetDefault("root", "")

	return Settings{
		Debug:  v.GetBool("debug"),
		Output: v.GetString("output"),
		Root:   v.GetString("root"),
	}
}

var defaultSettings = loadSettings()
