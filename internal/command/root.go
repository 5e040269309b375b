package command

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/internal/platform"
	"github.com/MimeLyc/sanzang/pkg/log"
	"github.com/MimeLyc/sanzang/pkg/textenc"
)

func (a *App) newRootCmd() *cobra.Command {
	cobra.EnablePrefixMatching = true

	var showPlatform, showVersion bool

	root := &cobra.Command{
		Use:   name,
		Short: "Direct translation of CJK texts with term tables",
		Long: `sanzang translates CJK texts by replacing every term listed in a
translation table with its equivalents, then prints the source and each
translated variant side by side, line by line.

Subcommand names may be abbreviated: "sanzang tr" runs "translate".`,
		Example: `  sanzang reflow -i raw.txt -o text.txt
  sanzang translate -i text.txt -o text.sz.txt table.txt
  ls texts/*.txt | sanzang batch table.txt out/`,
		Args:          a.usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				log.GetLogger().SetLevel(log.LevelDebug)
			}
			return nil
		},
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case showPlatform:
				_, err := io.WriteString(out, platform.Report(a.caps, a.version))
				return err
			case showVersion:
				_, err := fmt.Fprintln(out, a.versionInfo())
				return err
			}
			return apperr.New(apperr.ErrUsage, "no command given")
		}),
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(a.streams.In)
	root.SetOut(a.streams.Out)
	root.SetErr(a.streams.Err)

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		a.helpShown = true
		defaultHelp(cmd, args)
	})
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperr.WrapError(err, apperr.ErrUsage, "invalid option")
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&a.encoding, "encoding", "E", a.cfg.Text.Encoding, "set data encoding to `ENC`")
	flags.BoolVarP(&a.listEncodings, "list-encodings", "L", false, "list possible encodings and exit")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose mode for debugging")

	root.Flags().BoolVarP(&showPlatform, "platform", "P", false, "show platform information and exit")
	root.Flags().BoolVarP(&showVersion, "version", "V", false, "show version number and exit")

	root.AddCommand(
		a.newBatchCmd(),
		a.newLookupCmd(),
		a.newReflowCmd(),
		a.newTranslateCmd(),
	)

	return root
}

func (a *App) versionInfo() string {
	return fmt.Sprintf("%s %s [%s] [%s/%s] [%s]",
		name, a.version, runtime.Version(), a.caps.OS(), a.caps.Arch(), platform.DataEncoding(a.caps))
}

func (a *App) printEncodings(w io.Writer) error {
	_, err := io.WriteString(w, strings.Join(textenc.Names(), "\n")+"\n")
	return err
}

// dataEncoding resolves the encoding for this invocation: the -E flag or
// SANZANG_ENCODING, else the host default with an ASCII fallback to UTF-8.
func (a *App) dataEncoding() (textenc.Encoding, error) {
	if a.encoding != "" {
		return textenc.Lookup(a.encoding)
	}

	hostName := platform.DataEncoding(a.caps)
	enc, err := textenc.Lookup(hostName)
	if err != nil {
		log.Warn("Host encoding %q is not supported, using %s", hostName, textenc.DefaultName)
		return textenc.UTF8(), nil
	}
	return enc, nil
}
