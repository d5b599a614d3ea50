package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/services"
	"github.com/custodia-labs/codelens/internal/parsers/lexical"
)

var (
	parseJSON     bool
	parseMaxFiles int
)

var parseCmd = &cobra.Command{
	Use:   "parse <dir>",
	Short: "Analyse JavaScript and TypeScript files in a local directory",
	Long: `Extract functions from the code files under a directory, then build the
call graph and feature map the same way a GitHub repository is analysed.

Dependency and build directories (node_modules, dist, build, .next) and
hidden directories are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the full analysis as JSON")
	parseCmd.Flags().IntVar(&parseMaxFiles, "max-files", 0, "maximum files to parse (0 = github.max_files)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	root := args[0]
	_, analysis, err := analyzeDir(root, settingsService.Get(), parseMaxFiles)
	if err != nil {
		return err
	}

	if parseJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}
	printAnalysis(cmd.OutOrStdout(), root, analysis)
	return nil
}

// analyzeDir reads the code files under root and analyses them with the
// configured parser limits. maxFiles overrides github.max_files when positive.
func analyzeDir(root string, settings domain.Settings, maxFiles int) (map[string]string, *domain.RepositoryAnalysis, error) {
	if maxFiles <= 0 {
		maxFiles = settings.GitHub.MaxFiles
	}
	repos := services.NewRepositoryService(services.RepositoryConfig{
		Parser:              lexical.New(lexical.Config{ContainerDirs: settings.Parser.ContainerDirs}),
		Extensions:          settings.Parser.Extensions,
		MaxFiles:            maxFiles,
		MaxFunctionsPerFile: settings.GitHub.MaxFunctionsPerFile,
	})

	entries, err := walkSources(root)
	if err != nil {
		return nil, nil, err
	}

	files := make(map[string]string)
	for _, p := range repos.CodeFiles(entries) {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files[p] = string(data)
	}

	return files, repos.AnalyzeFiles(files), nil
}

// walkSources lists the files under root as tree entries with
// slash-separated relative paths, in lexical order.
func walkSources(root string) ([]domain.TreeEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}

	var entries []domain.TreeEntry
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		entries = append(entries, domain.TreeEntry{
			Path: filepath.ToSlash(rel),
			Type: domain.EntryBlob,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return entries, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(services.SkippedDirs, name)
}

func printAnalysis(out io.Writer, root string, a *domain.RepositoryAnalysis) {
	fmt.Fprintf(out, "Analysed %d files in %s\n", len(a.Files), root)
	if len(a.Functions) == 0 {
		fmt.Fprintln(out, "No functions found.")
		return
	}

	fmt.Fprintf(out, "\nFunctions (%d)\n", len(a.Functions))
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, fn := range a.Functions {
		fmt.Fprintf(w, "  %s:%d\t%s\t%s\n", fn.File, fn.Line, fn.Kind, fn.Signature)
	}
	_ = w.Flush()

	fmt.Fprintf(out, "\nFeatures (%d)\n", len(a.Features))
	for _, f := range a.Features {
		fmt.Fprintf(out, "  %s: %d files, %d functions\n", f.Feature, len(f.Files), len(f.Functions))
	}

	fmt.Fprintf(out, "\nCall edges: %d\n", len(a.Graph.Edges))
}
