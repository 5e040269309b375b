package command

import (
	"io"

	"github.com/spf13/cobra"
)

func (a *App) newTranslateCmd() *cobra.Command {
	var inPath, outPath string

	cmd := &cobra.Command{
		Use:   "translate [flags] TABLE",
		Short: "Standard single text translation",
		Long: `Translate text using simple table rules. Input text is read from STDIN by
default, and the listing is written to STDOUT by default.`,
		Example: `  sanzang translate -i text.txt -o text.sz.txt table.txt`,
		Args:    a.usageArgs(cobra.ExactArgs(1)),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			enc, err := a.dataEncoding()
			if err != nil {
				return err
			}
			tr, err := a.loadTranslator(args[0], enc)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if inPath != "" && outPath != "" {
				return tr.TranslateFile(ctx, inPath, outPath)
			}
			return withText(cmd, enc, inPath, outPath, func(r io.Reader, w io.Writer) error {
				return tr.TranslateIO(ctx, r, w)
			})
		}),
	}

	cmd.Flags().StringVarP(&inPath, "infile", "i", "", "read input text from `FILE`")
	cmd.Flags().StringVarP(&outPath, "outfile", "o", "", "write output text to `FILE`")

	return cmd
}
