package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/echosoar/jsi-sub000/internal/lexer"
	"github.com/echosoar/jsi-sub000/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse source code and print its AST",
	Long: `Parse source code and display its Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

var parseExpression string

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpression, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, err := parseInput(args)
	if err != nil {
		return err
	}

	var lexOpts []lexer.LexerOption
	if strictMode {
		lexOpts = append(lexOpts, lexer.WithStrict())
	}
	l := lexer.New(input, lexOpts...)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Parser errors:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	fmt.Println(program.String())
	return nil
}

func parseInput(args []string) (string, error) {
	if parseExpression != "" {
		return parseExpression, nil
	}
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}
