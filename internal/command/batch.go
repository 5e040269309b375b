package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/internal/batch"
	"github.com/MimeLyc/sanzang/pkg/file"
)

func (a *App) newBatchCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "batch [flags] TABLE OUTPUT_DIR < queue",
		Short: "Translate many files in parallel",
		Long: `Batch translate files concurrently. A list of files is read from STDIN, one
per line, while progress information is printed to STDERR. The list of output
files written is printed to STDOUT at the end of the batch. Each listing is
written to OUTPUT_DIR under the name of its input file.`,
		Example: `  find texts -name '*.txt' | sanzang batch -j 4 table.txt out/`,
		Args:    a.usageArgs(cobra.ExactArgs(2)),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			enc, err := a.dataEncoding()
			if err != nil {
				return err
			}
			tr, err := a.loadTranslator(args[0], enc)
			if err != nil {
				return err
			}

			inputs, err := file.ReadList(enc.NewReader(cmd.InOrStdin()))
			if err != nil {
				return apperr.WrapError(err, apperr.ErrIO, "failed to read file list")
			}

			runner := batch.SelectRunner(a.caps, jobs)
			bt := batch.New(tr, runner, batch.WithProgress(cmd.ErrOrStderr()))

			outputs, err := bt.TranslateToDir(cmd.Context(), inputs, args[1])
			if err != nil {
				return err
			}
			if len(outputs) == 0 {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(outputs, "\n"))
			return err
		}),
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", a.cfg.Batch.Jobs, "allow `N` concurrent workers (-1 for one per processor)")

	return cmd
}
