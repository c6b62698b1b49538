package main

import (
	"fmt"
	"time"

	"github.com/npillmayer/jmorph/dic"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print statistics of the configured dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			dict, err := dic.Open(cfg.Dictionary.Path)
			if err != nil {
				return err
			}
			defer dict.Close()
			w := cmd.OutOrStdout()
			g := dict.Grammar()
			_, err = fmt.Fprintf(w, "file:        %s\ndescription: %s\nversion:     %d\ncreated:     %s\n"+
				"words:       %d\npos:         %d\nmatrix:      %d×%d\n",
				cfg.Dictionary.Path, dict.Description(), dict.Header().Version,
				dict.Header().Created.UTC().Format(time.RFC3339),
				dict.WordCount(), g.POSCount(), g.LeftIDs(), g.RightIDs())
			return err
		},
	}
}
