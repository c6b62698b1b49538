package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/npillmayer/jmorph/dic"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var out, description string

	cmd := &cobra.Command{
		Use:   "build <lexicon>",
		Short: "Build a dictionary file from a lexicon source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildDictionary(cmd, args[0], out, description)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "system.jmd", "Output dictionary file")
	cmd.Flags().StringVar(&description, "description", "", "Description stored in the dictionary (overrides @description)")

	return cmd
}

func buildDictionary(cmd *cobra.Command, source, out, description string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	b := dic.NewBuilder()
	if err := dic.ParseLexicon(bufio.NewReader(in), b); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	if description != "" {
		b.SetDescription(description)
	}
	image, err := b.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	if err := os.WriteFile(out, image, 0o644); err != nil { //nolint:gosec
		return err
	}
	tracer().Infof("wrote %d words to %s", b.WordCount(), out)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words, %d bytes\n", out, b.WordCount(), len(image))
	return err
}
