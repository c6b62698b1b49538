package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/internal/boundary"
	"github.com/npillmayer/jmorph/internal/termwidth"
	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var asJSON, asTable, showOOV bool

	cmd := &cobra.Command{
		Use:   "tokenize [text...]",
		Short: "Split text into morphemes",
		Long: `Split text into morphemes. Every argument is analyzed as a text of its own.
Without arguments, lines are read from standard input.

Output has one morpheme per line: surface, part-of-speech, normalized form,
dictionary form and reading, separated by tabs. Every text is closed by EOS.
With --json, every morpheme is written as a JSON object instead.
With --table, surface, part-of-speech and reading are aligned in columns,
taking the display width of East Asian characters into account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			mode, err := cfg.Mode()
			if err != nil {
				return err
			}
			engineCfg, err := cfg.EngineConfig()
			if err != nil {
				return err
			}
			h, err := boundary.LoadWithConfig(cfg.Dictionary.Path, engineCfg)
			if err != nil {
				return err
			}
			defer h.Close()
			out := &printer{w: cmd.OutOrStdout(), json: asJSON, oov: showOOV}
			if asTable {
				out.table = termwidth.ContextFromEnvironment()
			}
			if len(args) > 0 {
				for _, text := range args {
					if err := out.print(h, text, mode); err != nil {
						return err
					}
				}
				return nil
			}
			return out.printLines(h, cmd.InOrStdin(), mode)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write morphemes as JSON objects, one per line")
	cmd.Flags().BoolVar(&asTable, "table", false, "Align columns for display on a terminal")
	cmd.Flags().BoolVar(&showOOV, "oov", false, "Mark out-of-vocabulary words with (OOV)")
	cmd.MarkFlagsMutuallyExclusive("json", "table")

	return cmd
}

type printer struct {
	w     io.Writer
	json  bool
	oov   bool
	table *termwidth.Context // nil unless columns are aligned
}

func (p *printer) printLines(h *boundary.Handle, r io.Reader, mode jmorph.Mode) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := p.print(h, scanner.Text(), mode); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (p *printer) print(h *boundary.Handle, text string, mode jmorph.Mode) error {
	if p.json {
		records, err := h.Tokenize([]byte(text), mode)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(p.w)
		enc.SetEscapeHTML(false)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}
	morphemes, err := h.Morphemes(text, mode)
	if err != nil {
		return err
	}
	tracer().Debugf("%d morphemes for %q", len(morphemes), text)
	if p.table != nil {
		return p.printTable(morphemes)
	}
	for _, m := range morphemes {
		line := strings.Join([]string{
			m.Surface(),
			strings.Join(m.PartOfSpeech(), ","),
			m.NormalizedForm(),
			m.DictionaryForm(),
			m.ReadingForm(),
		}, "\t")
		if p.oov && m.IsOOV() {
			line += "\t(OOV)"
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(p.w, "EOS")
	return err
}

func (p *printer) printTable(morphemes []jmorph.Morpheme) error {
	surfaceWidth, posWidth := 0, 0
	for _, m := range morphemes {
		surfaceWidth = max(surfaceWidth, termwidth.StringWidth(m.Surface(), p.table))
		posWidth = max(posWidth, termwidth.StringWidth(shortPOS(m), p.table))
	}
	for _, m := range morphemes {
		line := termwidth.Pad(m.Surface(), surfaceWidth, p.table) + "  " +
			termwidth.Pad(shortPOS(m), posWidth, p.table) + "  " + m.ReadingForm()
		if p.oov && m.IsOOV() {
			line += "  (OOV)"
		}
		if _, err := fmt.Fprintln(p.w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w, "EOS")
	return err
}

// shortPOS joins the part-of-speech components up to the first "*".
func shortPOS(m jmorph.Morpheme) string {
	pos := m.PartOfSpeech()
	for i, c := range pos {
		if c == "*" {
			pos = pos[:i]
			break
		}
	}
	return strings.Join(pos, "-")
}
