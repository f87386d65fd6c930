package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vnpoem/poetic"
	"github.com/vnpoem/poetic/internal/logging"
)

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Check Vietnamese poems against classical forms",
		Long: `poetic checks a poem against lục bát (6/8) or thất ngôn bát cú (7×8)
tone and rhyme rules, or against the word list only, and reports located
defects, a 0-100 score and a masked copy ready for rewriting.

Poems are read from the file given as argument, or from stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(opts.logLevel, "console")
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.dataDir, "data", "", "tables directory (default: embedded tables)")
	pf.StringVarP(&opts.form, "form", "f", "68", "form: 68, 78 or 00 (spelling only)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.jsonOut, "json", false, "print JSON")
	pf.Float64Var(&opts.threshold, "threshold", poetic.DefaultPassThreshold, "score needed to pass")

	cmd.AddCommand(
		analyzeCmd(opts),
		scoreCmd(opts),
		maskCmd(opts),
		annotateCmd(opts),
		toneCmd(opts),
		rhymesCmd(opts),
		suggestCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (o *options) engine() (*poetic.Engine, error) {
	eo := []poetic.Option{poetic.WithLogger(o.log), poetic.WithPassThreshold(o.threshold)}
	if o.dataDir == "" {
		return poetic.Default(eo...)
	}
	return poetic.New(o.dataDir, eo...)
}

// input loads the engine, the form and the poem text.
func (o *options) input(cmd *cobra.Command, args []string) (*poetic.Engine, poetic.FormKind, string, error) {
	form, err := poetic.ParseForm(o.form)
	if err != nil {
		return nil, 0, "", err
	}
	eng, err := o.engine()
	if err != nil {
		return nil, 0, "", err
	}
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, 0, "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, "", fmt.Errorf("read poem: %w", err)
	}
	o.log.Debug("poem read", zap.Int("bytes", len(b)), zap.Stringer("form", form))
	return eng, form, string(b), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func analyzeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "List every defect and the score",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, form, poem, err := o.input(cmd, args)
			if err != nil {
				return err
			}
			a, err := eng.Analyze(poem, form)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if o.jsonOut {
				return writeJSON(out, a)
			}
			for _, st := range a.Stanzas {
				fmt.Fprintf(out, "stanza %d: %s, %d lines, score %.2f\n", st.Index, st.Status, st.Lines, st.Score)
				for _, d := range st.Defects {
					fmt.Fprintf(out, "  line %d, position %d: %s", d.Line, d.Position, d.Kind)
					if d.Word != "" {
						fmt.Fprintf(out, " %q", d.Word)
					}
					fmt.Fprintln(out)
				}
			}
			fmt.Fprintf(out, "score %.2f (%s)\n", a.Score, verdict(a.Passed))
			return nil
		},
	}
}

func verdict(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

func scoreCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "score [file]",
		Short: "Print the poem score",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, form, poem, err := o.input(cmd, args)
			if err != nil {
				return err
			}
			score, err := eng.Score(poem, form)
			if err != nil {
				return err
			}
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"form": form, "score": score})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", score)
			return nil
		},
	}
}

func maskCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mask [file]",
		Short: "Replace defective syllables with placeholders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, form, poem, err := o.input(cmd, args)
			if err != nil {
				return err
			}
			_, m, err := eng.AnalyzeAndMask(poem, form)
			if err != nil {
				return err
			}
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.Masked)
			return nil
		},
	}
}

func annotateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "annotate [file]",
		Short: "Mark tones, broken rhymes and unknown words inline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, form, poem, err := o.input(cmd, args)
			if err != nil {
				return err
			}
			out, err := eng.Annotate(poem, form)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func toneCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tone word...",
		Short: "Show onset, rhyme kernel and tone class of syllables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := o.engine()
			if err != nil {
				return err
			}
			syls := make([]poetic.Syllable, len(args))
			for i, w := range args {
				syls[i] = eng.Analyzer().Syllable(w, 1, i+1)
			}
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), syls)
			}
			for _, s := range syls {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", s.Text, s.Onset, s.Kernel, s.Tone)
			}
			return nil
		},
	}
}

func rhymesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rhymes a b",
		Short: "Tell whether two syllables rhyme",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := o.engine()
			if err != nil {
				return err
			}
			a, b := args[0], args[1]
			forward := eng.Rhymes().Rhymes(a, b)
			backward := eng.Rhymes().Rhymes(b, a)
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]bool{"forward": forward, "backward": backward})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s: %t\n%s → %s: %t\n", a, b, forward, b, a, backward)
			return nil
		},
	}
}

func suggestCmd(o *options) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "suggest word",
		Short: "Suggest dictionary words close to a misspelling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := o.engine()
			if err != nil {
				return err
			}
			sugg := eng.Suggest(args[0], n)
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), sugg)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sugg, "\n"))
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 5, "number of suggestions")
	return cmd
}
