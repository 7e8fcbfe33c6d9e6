package cmd

import (
	"fmt"

	"github.com/echosoar/jsi-sub000/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexShowPos    bool
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a file or expression",
	Long: `Tokenize a program and print the resulting tokens.

Examples:
  # Tokenize a script file
  jsi lex script.js

  # Tokenize an inline expression
  jsi lex -e "var x = 42;"

  # Show token positions
  jsi lex --show-pos script.js

  # Show only illegal tokens
  jsi lex --only-errors script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := readInput(args)
	if err != nil {
		return err
	}

	var lexOpts []lexer.LexerOption
	if strictMode {
		lexOpts = append(lexOpts, lexer.WithStrict())
	}
	l := lexer.New(input, lexOpts...)

	errorCount := 0
	for {
		tok := l.NextToken()
		if lexOnlyErrors && tok.Type != lexer.ILLEGAL {
			if tok.Type == lexer.EOF {
				break
			}
			continue
		}
		printToken(tok)
		if tok.Type == lexer.ILLEGAL {
			errorCount++
		}
		if tok.Type == lexer.EOF {
			break
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok lexer.Token) {
	output := fmt.Sprintf("[%-12s]", tok.Type)
	if tok.Type == lexer.EOF {
		output += " EOF"
	} else if tok.Literal == "" {
		output += fmt.Sprintf(" %s", tok.Type)
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}
