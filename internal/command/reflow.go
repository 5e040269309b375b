package command

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/sanzang/internal/reflow"
)

func (a *App) newReflowCmd() *cobra.Command {
	var inPath, outPath string

	cmd := &cobra.Command{
		Use:   "reflow [flags]",
		Short: "Format CJK text for translation",
		Long: `Format CJK text for translation. Edition margins are removed and the text
is broken into one clause per line, so that terms are not split across lines
and translated listings stay readable. Input is read from STDIN by default,
and output is written to STDOUT by default.`,
		Example: `  sanzang reflow -i T31n1586.txt -o T31n1586.rf.txt`,
		Args:    a.usageArgs(cobra.NoArgs),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			enc, err := a.dataEncoding()
			if err != nil {
				return err
			}
			return withText(cmd, enc, inPath, outPath, func(r io.Reader, w io.Writer) error {
				text, err := io.ReadAll(r)
				if err != nil {
					return err
				}
				_, err = io.WriteString(w, reflow.Reflow(string(text)))
				return err
			})
		}),
	}

	cmd.Flags().StringVarP(&inPath, "infile", "i", "", "read input text from `FILE`")
	cmd.Flags().StringVarP(&outPath, "outfile", "o", "", "write output text to `FILE`")

	return cmd
}
