// SPDX-License-Identifier: EPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ik5/sfpitch"
	"github.com/ik5/sfpitch/formats"
	"github.com/ik5/sfpitch/pitch"
	"github.com/ik5/sfpitch/soundfont"
	"github.com/ik5/sfpitch/synth"
)

type options struct {
	verbose bool

	// render
	output    string
	rate      int
	polyphony int
	gain      float64
	block     int

	// pitch
	analysisRate int
	window       int
	hop          int
	minimum      float64

	asJSON bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "sfpitch",
		Short: "Render MIDI through SoundFont banks and track pitch",
		Long: `sfpitch plays Standard MIDI Files through SoundFont 2 instrument banks
and estimates the pitch of recorded audio.

Examples:
  sfpitch presets piano.sf2
  sfpitch render piano.sf2 song.mid -o song.wav
  sfpitch pitch take.ogg --window 2048 --hop 512`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug messages to stderr")

	presets := &cobra.Command{
		Use:   "presets <bank.sf2>",
		Short: "List the presets of a SoundFont bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(cmd, opts, args[0])
		},
	}
	presets.Flags().BoolVar(&opts.asJSON, "json", false, "Print the directory as JSON")

	def := synth.DefaultConfig()
	render := &cobra.Command{
		Use:   "render <bank.sf2> <song.mid>",
		Short: "Render a MIDI file to a 16-bit stereo WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args[0], args[1])
		},
	}
	render.Flags().StringVarP(&opts.output, "output", "o", "", "Output .wav path (default: song name with .wav)")
	render.Flags().IntVar(&opts.rate, "rate", def.SampleRate, "Output sample rate in Hz")
	render.Flags().IntVar(&opts.polyphony, "polyphony", def.Polyphony, "Maximum simultaneous voices")
	render.Flags().Float64Var(&opts.gain, "gain", float64(def.Gain), "Master gain")
	render.Flags().IntVar(&opts.block, "block", 512, "Render block size in frames")

	track := &cobra.Command{
		Use:   "pitch <audio.{wav,aif,aiff,mp3,ogg}>",
		Short: "Print pitch estimates for an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPitch(cmd, opts, args[0])
		},
	}
	track.Flags().IntVar(&opts.analysisRate, "rate", 0, "Analysis sample rate in Hz (default: the file's rate)")
	track.Flags().IntVar(&opts.window, "window", 2048, "Analysis window in samples")
	track.Flags().IntVar(&opts.hop, "hop", 512, "Samples between windows")
	track.Flags().Float64Var(&opts.minimum, "min-clarity", 0, "Hide estimates below this clarity")
	track.Flags().BoolVar(&opts.asJSON, "json", false, "Print estimates as JSON")

	root.AddCommand(presets, render, track)

	return root
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func loadBank(path string) (*soundfont.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bank, err := soundfont.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bank, nil
}

func runPresets(cmd *cobra.Command, opts *options, path string) error {
	bank, err := loadBank(path)
	if err != nil {
		return err
	}

	dir := bank.Directory()
	out := cmd.OutOrStdout()

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dir)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BANK\tPRESET\tNAME")
	for _, p := range dir {
		fmt.Fprintf(w, "%03d\t%03d\t%s\n", p.Bank, p.Preset, p.Name)
	}
	return w.Flush()
}

func outputPath(input, output string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".wav"
}

func runRender(cmd *cobra.Command, opts *options, bankPath, songPath string) error {
	log := opts.logger(cmd)

	if opts.rate <= 0 {
		return fmt.Errorf("invalid --rate %d", opts.rate)
	}

	bank, err := loadBank(bankPath)
	if err != nil {
		return err
	}

	song, err := os.Open(songPath)
	if err != nil {
		return err
	}
	defer song.Close()

	cfg := synth.DefaultConfig()
	cfg.SampleRate = opts.rate
	cfg.Polyphony = opts.polyphony
	cfg.Gain = float32(opts.gain)
	cfg.Logger = log

	dst := outputPath(songPath, opts.output)
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	w := formats.NewWAVWriter(f, cfg.SampleRate, 2)
	if err := sfpitch.RenderSMFTo(cmd.Context(), bank, song, cfg, opts.block, w.WriteStereo); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	log.Info("rendered",
		slog.String("output", dst),
		slog.Int64("frames", w.Frames()),
		slog.Float64("seconds", float64(w.Frames())/float64(cfg.SampleRate)))

	return f.Close()
}

type estimate struct {
	Time      float64 `json:"time"`
	Frequency float64 `json:"frequency"`
	Clarity   float64 `json:"clarity"`
	Note      string  `json:"note,omitempty"`
	Cents     float64 `json:"cents,omitempty"`
}

func runPitch(cmd *cobra.Command, opts *options, path string) error {
	log := opts.logger(cmd)

	src, err := formats.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	log.Debug("decoded",
		slog.String("path", path),
		slog.Int("rate", src.SampleRate()),
		slog.Int("channels", src.Channels()))

	estimates, err := sfpitch.TrackPitch(src, opts.analysisRate, opts.window, opts.hop)
	if err != nil {
		return err
	}

	rows := make([]estimate, 0, len(estimates))
	for _, e := range estimates {
		if e.Clarity < opts.minimum {
			continue
		}
		row := estimate{Time: e.Time, Frequency: e.Frequency, Clarity: e.Clarity}
		if e.Frequency > 0 {
			name, octave, cents := pitch.NoteName(e.Frequency)
			row.Note = fmt.Sprintf("%s%d", name, octave)
			row.Cents = cents
		}
		rows = append(rows, row)
	}

	return printEstimates(cmd.OutOrStdout(), rows, opts.asJSON)
}

func printEstimates(out io.Writer, rows []estimate, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(out).Encode(rows)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tHZ\tCLARITY\tNOTE")
	for _, r := range rows {
		if r.Frequency == 0 {
			fmt.Fprintf(w, "%.3f\t-\t%.2f\t-\n", r.Time, r.Clarity)
			continue
		}
		fmt.Fprintf(w, "%.3f\t%.1f\t%.2f\t%s %+.0f\n", r.Time, r.Frequency, r.Clarity, r.Note, r.Cents)
	}
	return w.Flush()
}
