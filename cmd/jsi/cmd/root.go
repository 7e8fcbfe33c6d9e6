package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var strictMode bool

var rootCmd = &cobra.Command{
	Use:   "jsi",
	Short: "A tree-walking interpreter for an ECMAScript subset",
	Long: `jsi interprets a practical subset of ECMAScript: variables, functions,
closures, classes, control flow, template literals, and a small set of
built-in objects (Object, Array, String, Number, Math, Error, Promise,
console).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&strictMode, "strict", false, "enable strict-mode parsing and semantics")
}
