// Command loanspell extracts the spelling deviations of Greek loanwords in
// Coptic texts.
//
// It transliterates each Greek lemma into the Coptic spelling a scribe would
// be expected to write, aligns that canonical form with the attested
// spelling, and reports every difference as a phonologically coherent edit.
package main

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/FocuswithJustin/loanspell/core/align"
	"github.com/FocuswithJustin/loanspell/core/edit"
	"github.com/FocuswithJustin/loanspell/core/errors"
	"github.com/FocuswithJustin/loanspell/core/morph"
	"github.com/FocuswithJustin/loanspell/core/sqlite"
	"github.com/FocuswithJustin/loanspell/core/translit"
	"github.com/FocuswithJustin/loanspell/internal/archive"
	"github.com/FocuswithJustin/loanspell/internal/attest"
	"github.com/FocuswithJustin/loanspell/internal/export"
	"github.com/FocuswithJustin/loanspell/internal/logging"
	"github.com/FocuswithJustin/loanspell/internal/pipeline"
	"github.com/FocuswithJustin/loanspell/internal/provenance"
	"github.com/FocuswithJustin/loanspell/internal/validation"
)

const version = "0.4.0"

// Command output goes to stdout, summaries to stderr. Tests replace both.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// CLI defines the command-line interface for loanspell.
var CLI struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"LOANSPELL_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" env:"LOANSPELL_LOG_FORMAT" help:"Log format (text, json)"`

	Extract  ExtractCmd  `cmd:"" help:"Extract spelling deviations from an attestation export"`
	Diff     DiffCmd     `cmd:"" help:"Show the refined edits between two spellings"`
	Translit TranslitCmd `cmd:"" help:"Transliterate Greek words into Coptic"`
	Rules    RulesGroup  `cmd:"" help:"Morphology exclusion rules"`
	Manifest ManifestCmd `cmd:"" help:"Show the manifest of a run"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// RulesGroup contains rule file operations.
type RulesGroup struct {
	List  RulesListCmd  `cmd:"" help:"List the built-in rules"`
	Check RulesCheckCmd `cmd:"" help:"Parse a rule file and list its rules"`
}

// MatchFlags are the flags shared by commands that compare spellings.
type MatchFlags struct {
	Aligner   string   `name:"aligner" default:"difflib" enum:"difflib,dmp" env:"LOANSPELL_ALIGNER" help:"Character aligner (difflib, dmp)"`
	Strategy  string   `name:"strategy" default:"insert-h" enum:"insert-h,shift-split" env:"LOANSPELL_STRATEGY" help:"Refinement strategy (insert-h, shift-split)"`
	Rules     []string `name:"rules" type:"existingfile" env:"LOANSPELL_RULES" help:"Additional exclusion rule files"`
	NoBuiltin bool     `name:"no-builtin-rules" help:"Do not apply the built-in exclusion rules"`
}

func (o MatchFlags) extractor(extra ...pipeline.Option) (*pipeline.Extractor, error) {
	al, err := align.New(o.Aligner)
	if err != nil {
		return nil, err
	}
	strategy, err := edit.ParseStrategy(o.Strategy)
	if err != nil {
		return nil, err
	}

	var filterOpts []morph.Option
	if o.NoBuiltin {
		filterOpts = append(filterOpts, morph.WithoutBuiltin())
	}
	for _, path := range o.Rules {
		rules, err := morph.LoadRules(path)
		if err != nil {
			return nil, err
		}
		filterOpts = append(filterOpts, morph.WithRules(rules...))
	}

	opts := []pipeline.Option{
		pipeline.WithAligner(al),
		pipeline.WithStrategy(strategy),
		pipeline.WithFilter(morph.NewFilter(filterOpts...)),
	}
	return pipeline.New(append(opts, extra...)...), nil
}

// ExtractCmd runs the full extraction over an attestation export.
type ExtractCmd struct {
	MatchFlags

	Input        string `name:"input" short:"i" default:"ddglc-attestations.csv" env:"ATTESTATIONS_CSV" help:"Attestation export (.csv, .tsv or .xml, optionally .xz or .gz)"`
	Format       string `name:"format" default:"auto" enum:"auto,csv,xml" env:"LOANSPELL_FORMAT" help:"Input format (auto, csv, xml)"`
	Out          string `name:"out" short:"o" default:"deviations-occurrences.csv" env:"LOANSPELL_OUT" help:"Output CSV, - for stdout (.xz or .gz compresses)"`
	SQLite       string `name:"sqlite" env:"LOANSPELL_SQLITE" help:"Also store deviations in this SQLite database"`
	Manifest     string `name:"manifest" env:"LOANSPELL_MANIFEST" help:"Run manifest path (default: next to the output)"`
	NoManifest   bool   `name:"no-manifest" help:"Do not write a run manifest"`
	Bundle       string `name:"bundle" env:"LOANSPELL_BUNDLE" help:"Pack output and manifest into a .tar.xz or .tar.gz"`
	Workers      int    `name:"workers" short:"w" default:"0" env:"LOANSPELL_WORKERS" help:"Worker goroutines (0 = number of CPUs)"`
	KeepExcluded bool   `name:"keep-excluded" env:"LOANSPELL_KEEP_EXCLUDED" help:"Write excluded edits with an excluded_by column"`
	Similarity   bool   `name:"similarity" env:"LOANSPELL_SIMILARITY" help:"Add a similarity column"`
}

// manifestPath returns where the manifest is written, or "" for none.
func (c *ExtractCmd) manifestPath() string {
	switch {
	case c.NoManifest:
		return ""
	case c.Manifest != "":
		return c.Manifest
	case c.Out == "-":
		return ""
	default:
		base := strings.TrimSuffix(archive.TrimCompression(c.Out), filepath.Ext(archive.TrimCompression(c.Out)))
		return base + ".manifest.json"
	}
}

func (c *ExtractCmd) validate() error {
	if err := validation.ValidatePath(c.Input); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	outputs := []string{c.SQLite, c.Manifest, c.Bundle}
	if c.Out != "-" {
		outputs = append(outputs, c.Out)
	}
	for _, p := range outputs {
		if p == "" {
			continue
		}
		if err := validation.ValidateOutputPath(p); err != nil {
			return fmt.Errorf("invalid output path %s: %w", p, err)
		}
	}
	if c.Bundle != "" && (c.Out == "-" || c.manifestPath() == "") {
		return errors.NewValidation("bundle", "needs a file output and a manifest")
	}
	return nil
}

// Run executes the extract command.
func (c *ExtractCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.run(ctx)
}

func (c *ExtractCmd) run(ctx context.Context) error {
	if err := c.validate(); err != nil {
		return err
	}

	x, err := c.extractor(
		pipeline.WithWorkers(c.Workers),
		pipeline.WithKeepExcluded(c.KeepExcluded),
	)
	if err != nil {
		return err
	}

	runID := provenance.NewRunID()
	ctx = logging.WithRunID(ctx, runID)
	m := provenance.New(runID, version)
	m.Settings = x.Settings()
	logging.DebugContext(ctx, "settings",
		"aligner", m.Settings.Aligner,
		"strategy", m.Settings.Strategy,
		"rules", len(m.Settings.Rules),
	)

	if m.Input, err = provenance.HashFile(c.Input); err != nil {
		return err
	}

	start := time.Now()
	format := validation.Format(c.Format)
	if c.Format == "auto" {
		format = validation.FormatUnknown
	}
	records, err := attest.Load(c.Input, format)
	if err != nil {
		return err
	}
	logging.StageComplete(ctx, "load", len(records), time.Since(start), "input", c.Input)

	res, err := x.Run(ctx, records)
	if err != nil {
		return err
	}
	m.Counts = res.Counts
	if res.Counts.RowsExtracted == 0 {
		logging.WarnContext(ctx, "no rows left to compare", "rows_read", res.Counts.RowsRead)
	}

	if err := c.writeCSV(res.Deviations); err != nil {
		return err
	}

	var db *export.DB
	if c.SQLite != "" {
		if db, err = export.OpenDB(ctx, c.SQLite); err != nil {
			return err
		}
		defer db.Close()
		if err := db.WriteDeviations(ctx, runID, res.Deviations); err != nil {
			return err
		}
		logging.InfoContext(ctx, "stored deviations", "db", c.SQLite, "count", len(res.Deviations))
	}

	var outputs []string
	if c.Out != "-" {
		outputs = append(outputs, c.Out)
	}
	if err := m.Finish(outputs...); err != nil {
		return err
	}
	if db != nil {
		if err := db.WriteRun(ctx, m); err != nil {
			return err
		}
	}

	manifestPath := c.manifestPath()
	if manifestPath != "" {
		if err := m.Write(manifestPath); err != nil {
			return err
		}
	}
	if c.Bundle != "" {
		if err := archive.CreateBundle(c.Bundle, c.Out, manifestPath); err != nil {
			return err
		}
		logging.InfoContext(ctx, "wrote bundle", "path", c.Bundle)
	}

	printSummary(stderr, m)
	return nil
}

func (c *ExtractCmd) writeCSV(devs []attest.Deviation) error {
	var opts []export.Option
	if c.Similarity {
		opts = append(opts, export.WithSimilarity())
	}
	if c.KeepExcluded {
		opts = append(opts, export.WithExcludedBy())
	}

	if c.Out == "-" {
		return export.NewCSVWriter(stdout, opts...).WriteAll(devs)
	}
	w, err := export.CreateCSV(c.Out, opts...)
	if err != nil {
		return err
	}
	if err := w.WriteAll(devs); err != nil {
		return errors.Join(err, w.Close())
	}
	return w.Close()
}

func printSummary(w io.Writer, m *provenance.Manifest) {
	c := m.Counts
	fmt.Fprintf(w, "Run %s\n", m.RunID)
	fmt.Fprintf(w, "  input:     %s (%s)\n", m.Input.Path, humanize.Bytes(uint64(m.Input.Size)))
	fmt.Fprintf(w, "  rows:      %s read, %s dropped, %s compared\n",
		humanize.Comma(int64(c.RowsRead)), humanize.Comma(int64(c.Dropped())), humanize.Comma(int64(c.RowsExtracted)))
	fmt.Fprintf(w, "  edits:     %s extracted, %s excluded, %s written\n",
		humanize.Comma(int64(c.EditsExtracted)), humanize.Comma(int64(c.Excluded())), humanize.Comma(int64(c.EditsWritten)))
	for _, out := range m.Outputs {
		fmt.Fprintf(w, "  output:    %s (%s)\n", out.Path, humanize.Bytes(uint64(out.Size)))
	}
	fmt.Fprintf(w, "  duration:  %s\n", m.Duration)
}

// DiffCmd prints the refined edits for one canonical/variant pair.
type DiffCmd struct {
	MatchFlags

	Canonical string `arg:"" help:"Canonical Coptic spelling (or Greek with --greek)"`
	Variant   string `arg:"" help:"Attested Coptic spelling"`
	Greek     bool   `name:"greek" short:"g" help:"Transliterate CANONICAL from Greek first"`
	Raw       bool   `name:"raw" help:"Use the variant as given instead of cleaning it"`
}

// Run executes the diff command.
func (c *DiffCmd) Run() error {
	x, err := c.extractor()
	if err != nil {
		return err
	}

	canonical := c.Canonical
	if c.Greek {
		canonical = x.Canonical(canonical)
		if canonical == "" {
			return errors.NewValidation("canonical", fmt.Sprintf("%q has no Greek letters", c.Canonical))
		}
	}
	variant := c.Variant
	if !c.Raw {
		variant = attest.NormalizeOrthography(variant)
	}

	al, _ := align.New(c.Aligner)
	fmt.Fprintf(stdout, "%s → %s (similarity %.4f)\n", canonical, variant, align.Similarity(al, canonical, variant))
	edits := x.Diff(canonical, variant)
	if len(edits) == 0 {
		fmt.Fprintln(stdout, "  no edits")
		return nil
	}
	for _, e := range edits {
		if rule := x.ExcludedBy(e, canonical); rule != "" {
			fmt.Fprintf(stdout, "  %s  [excluded: %s]\n", e, rule)
			continue
		}
		fmt.Fprintf(stdout, "  %s\n", e)
	}
	return nil
}

// TranslitCmd prints the canonical Coptic spelling of Greek words.
type TranslitCmd struct {
	Words []string `arg:"" help:"Greek words"`
}

// Run executes the translit command.
func (c *TranslitCmd) Run() error {
	for _, w := range c.Words {
		fmt.Fprintf(stdout, "%s\t%s\n", w, translit.Transliterate(w))
	}
	return nil
}

// RulesListCmd lists the built-in rules.
type RulesListCmd struct{}

// Run executes the rules list command.
func (c *RulesListCmd) Run() error {
	for _, r := range morph.Builtin() {
		fmt.Fprintln(stdout, r.Name)
	}
	return nil
}

// RulesCheckCmd parses a rule file.
type RulesCheckCmd struct {
	Path string `arg:"" help:"Rule file" type:"existingfile"`
}

// Run executes the rules check command.
func (c *RulesCheckCmd) Run() error {
	rules, err := morph.LoadRules(c.Path)
	if err != nil {
		return err
	}
	for _, r := range rules {
		fmt.Fprintln(stdout, r.Name)
	}
	fmt.Fprintf(stdout, "%s: %d rules OK\n", c.Path, len(rules))
	return nil
}

// ManifestCmd prints a run manifest, either a JSON file or the manifest
// inside a bundle.
type ManifestCmd struct {
	Path string `arg:"" help:"Manifest JSON or run bundle" type:"existingfile"`
	JSON bool   `name:"json" help:"Print the raw manifest"`
}

// Run executes the manifest command.
func (c *ManifestCmd) Run() error {
	m, err := loadManifest(c.Path)
	if err != nil {
		return err
	}
	if c.JSON {
		return m.Encode(stdout)
	}
	printSummary(stdout, m)
	fmt.Fprintf(stdout, "  started:   %s (%s)\n", m.StartedAt.Format(time.RFC3339), humanize.Time(m.StartedAt))
	fmt.Fprintf(stdout, "  settings:  aligner=%s strategy=%s rules=%s\n",
		m.Settings.Aligner, m.Settings.Strategy, strings.Join(m.Settings.Rules, ","))
	fmt.Fprintf(stdout, "  input sha256: %s\n  input blake3: %s\n", m.Input.SHA256, m.Input.BLAKE3)
	return nil
}

func loadManifest(path string) (*provenance.Manifest, error) {
	if !strings.HasSuffix(archive.TrimCompression(path), ".tar") {
		return provenance.Read(path)
	}

	r, err := archive.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var m *provenance.Manifest
	err = r.Iterate(func(h *tar.Header, content io.Reader) (bool, error) {
		if !strings.HasSuffix(h.Name, ".manifest.json") {
			return false, nil
		}
		var derr error
		m, derr = provenance.Decode(content)
		return true, derr
	})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.NewNotFound("manifest", path)
	}
	return m, nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run() error {
	info := sqlite.GetInfo()
	fmt.Fprintf(stdout, "loanspell version %s\n", version)
	fmt.Fprintf(stdout, "sqlite driver: %s (%s, %s)\n", info.DriverName, info.DriverType, info.Package)
	return nil
}

func setupLogging(level, format string) error {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	f, err := logging.ParseFormat(format)
	if err != nil {
		return err
	}
	logging.InitLogger(lvl, f)
	return nil
}

func main() {
	// A missing .env is fine; flags and the environment still apply.
	envErr := godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("loanspell"),
		kong.Description("Spelling deviations of Greek loanwords in Coptic"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	ctx.FatalIfErrorf(setupLogging(CLI.LogLevel, CLI.LogFormat))
	if envErr == nil {
		logging.Debug("loaded .env")
	}
	err := ctx.Run(ctx)
	if err != nil {
		logging.Error("command failed", "command", ctx.Command(), "error", err)
	}
	ctx.FatalIfErrorf(err)
}
