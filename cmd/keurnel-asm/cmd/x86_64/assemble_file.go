// Package x86_64 implements the x86_64-architecture subcommands, adapted
// from the teacher's cmd/cli/cmd/x86_64 package: file resolution and
// reading follow the same shape, but the body now drives
// internal/frontend -> internal/encoder -> internal/resolver ->
// internal/bytecode instead of the original v0 pipeline.
package x86_64

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/keurnel/x86enc/internal/applog"
	"github.com/keurnel/x86enc/internal/bytecode"
	"github.com/keurnel/x86enc/internal/config"
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder"
	"github.com/keurnel/x86enc/internal/frontend"
	"github.com/keurnel/x86enc/internal/resolver"
)

var (
	flagOut        string
	flagConfigPath string
	flagVerbose    bool
)

var AssembleFileCmd = &cobra.Command{
	Use:     "assemble-file <instruction-file>",
	GroupID: "file-operations",
	Short:   "Assemble an instruction-list file into a raw binary file.",
	Long:    `Assemble an instruction-list file (internal/frontend's line format) into a raw binary file.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssembleFile(cmd, args)
	},
}

func init() {
	AssembleFileCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output binary file path (default: <input>.bin)")
	AssembleFileCmd.Flags().StringVarP(&flagConfigPath, "config", "c", "", "TOML session config file (default: 64-bit, NASM dialect, modern CPU mask)")
	AssembleFileCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every diagnostic, not only errors and warnings")
}

// runAssembleFile resolves the input file, loads the session config,
// parses it into instructions, encodes and resolves them, and — on
// success — writes the resulting bytes and a relocation summary; on
// failure it reports every diagnostic and exits non-zero without writing
// a partial object (spec.md §7's propagation policy, demonstrated
// end-to-end).
func runAssembleFile(cmd *cobra.Command, args []string) error {
	log := applog.New(flagVerbose, cmd.ErrOrStderr())

	fullPath, err := resolveFilePath(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source, err := readSourceFile(fullPath)
	if err != nil {
		return err
	}

	sink := diag.NewSink(fullPath)
	instructions := frontend.Parse(source, fullPath, cfg, sink)

	cont := bytecode.New()
	for _, in := range instructions {
		encoder.Encode(in, cont, sink)
	}

	if sink.HasErrors() {
		applog.LogEntries(log, sink.Entries())
		return fmt.Errorf("assembly failed with %d error(s)", len(sink.Errors()))
	}
	applog.LogEntries(log, sink.Entries())

	resolver.Resolve(cont)
	out := cont.Output()

	outPath := flagOut
	if outPath == "" {
		outPath = fullPath + ".bin"
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Infof("wrote %d bytes to %s", len(out), outPath)
	printRelocations(cmd, cont.Relocations())
	return nil
}

// resolveFilePath validates the CLI arguments and returns the absolute path
// to the instruction-list file.
func resolveFilePath(args []string) (string, error) {
	if args[0] == "" {
		return "", fmt.Errorf("instruction file path is empty")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to get current working directory: %w", err)
	}

	fullPath := args[0]
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(cwd, fullPath)
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return "", fmt.Errorf("instruction file does not exist at path: %s", fullPath)
	}

	return fullPath, nil
}

// readSourceFile reads the instruction-list source file and returns its content.
func readSourceFile(path string) (string, error) {
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read instruction file: %w", err)
	}
	return string(sourceBytes), nil
}

// loadConfig returns the TOML-loaded session config, or config.Default()
// when no --config flag was given.
func loadConfig() (*config.Config, error) {
	if flagConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// printRelocations renders the container's still-unresolved relocations as
// a table (go-pretty), one row per value still awaiting an external
// symbol resolution (spec.md §1 Non-goals: this repository never resolves
// them itself).
func printRelocations(cmd *cobra.Command, relocs []bytecode.Relocation) {
	if len(relocs) == 0 {
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"Offset", "Size (bits)", "Symbol", "Relative", "Location"})
	for _, r := range relocs {
		tw.AppendRow(table.Row{r.Offset, r.Value.SizeBits, r.Value.Expr.Symbol, r.Value.Relative, r.Value.SourceLocation})
	}
	tw.Render()
}
