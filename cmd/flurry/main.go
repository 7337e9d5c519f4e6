package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/flurry/internal/config"
	"github.com/san-kum/flurry/internal/core"
	"github.com/san-kum/flurry/internal/host"
	"github.com/san-kum/flurry/internal/tui"
)

var (
	configFile string
	presetName string
	seed       int64
	verbose    bool

	backend   string
	winFrames int

	snapFrames int
	snapWidth  int
	snapHeight int

	benchFrames int
	benchWidth  int
	benchHeight int
	plotWidth   int
	benchJSON   string

	step float64
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("flurry: ")

	rootCmd := &cobra.Command{
		Use:   "flurry",
		Short: "procedural particle flurries",
		RunE:  runWindow,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (yaml)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "preset name (default from settings)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed, 0 for time based")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log hidden frame stalls")
	rootCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend: raylib or gl")
	rootCmd.Flags().IntVar(&winFrames, "frames", 0, "stop after this many frames")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open a window and animate",
		RunE:  runWindow,
	}
	runCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend: raylib or gl")
	runCmd.Flags().IntVar(&winFrames, "frames", 0, "stop after this many frames")

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "animate in the terminal",
		RunE:  runTerm,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.png]",
		Short: "render headless frames and save the last one",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 180, "frames to simulate")
	snapshotCmd.Flags().IntVar(&snapWidth, "width", 640, "image width")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", 480, "image height")
	snapshotCmd.Flags().Float64Var(&step, "step", 1.0/60.0, "seconds between frames")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark headless rendering",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per preset")
	benchCmd.Flags().IntVar(&benchWidth, "width", 320, "canvas width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 240, "canvas height")
	benchCmd.Flags().Float64Var(&step, "step", 1.0/60.0, "seconds between frames")
	benchCmd.Flags().IntVar(&plotWidth, "plot", 80, "plot width")
	benchCmd.Flags().StringVar(&benchJSON, "json", "", "write reports as json to this path, - for stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and color names",
		RunE:  listPresets,
	}

	textureCmd := &cobra.Command{
		Use:   "texture [out.png]",
		Short: "export the smoke texture atlas",
		Args:  cobra.ExactArgs(1),
		RunE:  exportTexture,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write default settings",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(runCmd, termCmd, snapshotCmd, benchCmd, presetsCmd, textureCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings() (*config.Settings, error) {
	s, err := config.LoadOrDefault(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if presetName != "" {
		s.Preset = presetName
	}
	return s, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	preset, err := s.Current()
	if err != nil {
		return err
	}

	opts := host.Options{
		Settings: s,
		Preset:   preset,
		Logger:   log.Default(),
		Verbose:  verbose,
		Frames:   winFrames,
	}
	switch backend {
	case "raylib":
		return host.RunRaylib(opts)
	case "gl":
		return host.RunGL(opts)
	default:
		return fmt.Errorf("unknown backend: %s", backend)
	}
}

func runTerm(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	return tui.RunPreview(s, s.Preset)
}

func listPresets(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	return writePresets(cmd.OutOrStdout(), s)
}

// writePresets prints the preset table followed by the accepted color names.
func writePresets(out io.Writer, s *config.Settings) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLUSTERS\tDEFINITION")
	for _, name := range s.PresetNames() {
		p, err := s.Lookup(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == s.Preset {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%d\t%s\n", name, marker, len(p.Clusters), p)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\ncolors: %s\n", strings.Join(core.ColorModeNames(), ", "))
	return err
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.Save(args[0], config.DefaultSettings()); err != nil {
		return err
	}
	log.Printf("wrote %s", args[0])
	return nil
}
