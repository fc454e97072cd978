package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ucc/driver"
	"ucc/driver/lexer"
	uerr "ucc/error"
	"ucc/grammar"
	"ucc/spec"
)

var rootCmd = &cobra.Command{
	Use:   "ucc [flags] <grammar-file> <source-file> <output-file>",
	Short: "Compile a source program using a data-driven language definition",
	Long: `ucc is a universal compiler front end: the scanner and the LL(1)
parser are driven entirely by tables loaded from the language-definition
file, so no grammar is built in. The source program is tokenized, parsed,
and translated into tuple-form intermediate code written to the output
file.`,
	Args:          cobra.ExactArgs(3),
	RunE:          runCompile,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootFlags = struct {
	grammar      *bool
	predictTable *bool
	tokens       *bool
	parse        *bool
	generation   *bool
}{}

func init() {
	rootFlags.grammar = rootCmd.Flags().Bool("grammar", false, "print the grammar and its FIRST/FOLLOW/PREDICT sets")
	rootFlags.predictTable = rootCmd.Flags().Bool("predict-table", false, "print the predict table")
	rootFlags.tokens = rootCmd.Flags().Bool("tokens", false, "print each token as the parser consumes it")
	rootFlags.parse = rootCmd.Flags().Bool("parse", false, "print the parse trace")
	rootFlags.generation = rootCmd.Flags().Bool("generation", false, "print the full generation trace at every parse step")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	grammarPath := args[0]
	sourcePath := args[1]
	outputPath := args[2]

	defer func() {
		if retErr != nil {
			if specErr, ok := retErr.(*uerr.SpecError); ok {
				specErr.FilePath = grammarPath
				specErr.SourceName = grammarPath
			}
		}
	}()

	tracker := uerr.NewTracker(os.Stderr, sourcePath)

	g, table, err := loadLanguageDefinition(grammarPath)
	if err != nil {
		return err
	}

	for _, conflict := range g.PredictConflicts() {
		symTab := g.SymbolTable()
		tracker.ReportWarning(fmt.Sprintf("predict conflict: %v on %v: production %v overridden by %v",
			symTab.Text(conflict.NonTerminal), symTab.Text(conflict.Terminal),
			conflict.OldProd, conflict.NewProd))
	}

	if *rootFlags.grammar {
		g.WriteDescription(os.Stdout)
	}
	if *rootFlags.predictTable {
		if err := g.WritePredictTable(os.Stdout); err != nil {
			return err
		}
	}

	srcFile, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("Cannot open the source file %s: %w", sourcePath, err)
	}
	defer srcFile.Close()

	lex, err := lexer.NewLexer(table, srcFile, tracker)
	if err != nil {
		return err
	}

	semStack := driver.NewSemanticStack()
	symbols := driver.NewSymbolTable()
	routines := driver.NewSemanticRoutines(semStack, symbols, tracker)

	var opts []driver.ParserOption
	if *rootFlags.tokens {
		opts = append(opts, driver.TraceTokens(os.Stdout))
	}
	if *rootFlags.parse {
		opts = append(opts, driver.TraceParse(os.Stdout))
	}
	if *rootFlags.generation {
		opts = append(opts, driver.TraceGeneration(os.Stdout))
	}

	p, err := driver.NewParser(g, lex, semStack, routines, tracker, opts...)
	if err != nil {
		return err
	}
	p.Parse()

	if tracker.HasError() {
		return fmt.Errorf("compilation failed with %v error(s)", tracker.ErrorCount())
	}

	outFile, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("Cannot open the generated code file %s: %w", outputPath, err)
	}
	defer outFile.Close()

	return routines.WriteCode(outFile)
}

func loadLanguageDefinition(path string) (*grammar.Grammar, *lexer.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("Cannot open the language definition file %s: %w", path, err)
	}
	defer f.Close()

	ast, err := spec.Parse(f)
	if err != nil {
		return nil, nil, err
	}

	b := grammar.Builder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		return nil, nil, err
	}

	table, err := lexer.NewTable(ast.ScannerTable, g.SymbolTable())
	if err != nil {
		return nil, nil, err
	}

	return g, table, nil
}
