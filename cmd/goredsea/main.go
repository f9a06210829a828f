// Command goredsea decodes an RDS bit or sample stream into a sequence
// of newline-terminated records, one per received group, following the
// external interface of the core it wraps.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartgrantham/goredsea/internal/config"
	"github.com/bartgrantham/goredsea/internal/framer"
	"github.com/bartgrantham/goredsea/internal/station"
	"github.com/bartgrantham/goredsea/internal/tui"
)

var cfg = config.New()

var (
	flagFile       string
	flagInput      string
	flagTUI        bool
	flagBigFont    string
	flagMediumFont string
)

var rootCmd = &cobra.Command{
	Use:   "goredsea",
	Short: "Decode an RDS sub-carrier bit or sample stream into records",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "read samples from a file instead of stdin; a .wav extension is decoded as a WAV container")
	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "pcm", "input bit source: pcm or ascii")
	rootCmd.Flags().BoolVar(&flagTUI, "tui", false, "show a full-screen terminal view instead of printing records")
	rootCmd.Flags().StringVar(&flagBigFont, "big-font", "univers.flf", "FIGlet font for the PI display (--tui only)")
	rootCmd.Flags().StringVar(&flagMediumFont, "medium-font", "nancyj-improved.flf", "FIGlet font for the PS display (--tui only)")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", "info", "log verbosity: debug, info, warn or error")
}

func run(cmd *cobra.Command, args []string) error {
	mode, err := config.ParseInputMode(flagInput)
	if err != nil {
		return err
	}
	cfg.Mode = mode
	cfg.Path = flagFile
	cfg.TUI = flagTUI
	cfg.BigFontPath = flagBigFont
	cfg.MediumFontPath = flagMediumFont
	if err := cfg.ApplyLogLevel(); err != nil {
		return err
	}

	src, closer, err := cfg.OpenBitSource()
	if err != nil {
		return err
	}
	defer closer.Close()

	f := framer.New(src, cfg.Logger)
	stations := map[uint16]*station.Station{}

	var view *tui.Viewer
	if cfg.TUI {
		view, err = tui.New(cfg.BigFontPath, cfg.MediumFontPath)
		if err != nil {
			return err
		}
		defer view.Close()
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for {
		group, ok := f.NextGroup()
		if !ok {
			break
		}

		st, exists := stations[group.Block1]
		if !exists {
			st = station.New(group.Block1)
			stations[group.Block1] = st
		}
		rec := st.Update(group)

		if view != nil {
			if view.Closed() {
				break
			}
			view.Show(rec, st.PS(), st.RT(), f.CorrectionRate())
			continue
		}

		fmt.Fprintln(out, rec.String())
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cfg.Logger.Println(err)
		os.Exit(1)
	}
}
