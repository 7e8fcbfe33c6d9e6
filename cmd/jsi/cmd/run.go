package cmd

import (
	"fmt"
	"os"

	"github.com/echosoar/jsi-sub000/pkg/jsi"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or expression",
	Long: `Execute a script from a file or inline expression.

Examples:
  # Run a script file
  jsi run script.js

  # Evaluate an inline expression
  jsi run -e "console.log('Hello, World!')"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	engine, err := jsi.New(jsi.WithStrict(strictMode), jsi.WithFile(filename))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	engine.SetOutput(os.Stdout)

	result, err := engine.Run(input)
	if err != nil {
		return err
	}
	if result.Value != nil {
		fmt.Println(result.Value.String())
	}
	return nil
}

func readInput(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
