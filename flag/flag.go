// Package flag provides viper-backed getters for global command flags.
package flag

import (
	"github.com/spf13/viper"
)

// Verbose returns option "--verbose".
func Verbose() int {
	return viper.GetInt("verbose")
}

// Quiet returns option "--quiet".
func Quiet() int {
	return viper.GetInt("quiet")
}

// ConfigFile returns option "--config".
func ConfigFile() string {
	return viper.GetString("config")
}

// APIBase returns option "--api-base", or JSONFIX_API_BASE.
func APIBase() string {
	return viper.GetString("api-base")
}

// Email returns option "--email", or JSONFIX_EMAIL.
func Email() string {
	return viper.GetString("email")
}

// NoColor returns option "--no-color".
func NoColor() bool {
	return viper.GetBool("no-color")
}
