package command

import (
	"github.com/spf13/cobra"

	"github.com/MimeLyc/sanzang/internal/apperr"
)

func (a *App) newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [flags] TABLE TERM",
		Short: "Show the table record for a source term",
		Long: `Print the record whose source term is exactly TERM, in table file format.
The command fails if the table has no such record.`,
		Example: `  sanzang lookup table.txt 三藏`,
		Args:    a.usageArgs(cobra.ExactArgs(2)),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			enc, err := a.dataEncoding()
			if err != nil {
				return err
			}
			tbl, err := a.loadTable(args[0], enc)
			if err != nil {
				return err
			}

			rec, ok := tbl.Find(args[1])
			if !ok {
				return apperr.New(apperr.ErrNotFound, "term not in table").
					WithContext("term", args[1]).
					WithContext("table", args[0])
			}

			out, err := enc.EncodeString(rec.String() + "\n")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return ioError(err)
		}),
	}

	return cmd
}
