// Package main provides the yt2speech command line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dgnsrekt/yt2speech/internal/cache"
	"github.com/dgnsrekt/yt2speech/internal/config"
	"github.com/dgnsrekt/yt2speech/internal/enhance"
	"github.com/dgnsrekt/yt2speech/internal/estimate"
	"github.com/dgnsrekt/yt2speech/internal/pipeline"
	"github.com/dgnsrekt/yt2speech/internal/speech"
	"github.com/dgnsrekt/yt2speech/internal/transcript"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	outputPath string
	voiceFlag  string
	noEnhance  bool
	noCache    bool
	debug      bool

	keyword = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render
	subtle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "241", Dark: "248"}).Render

	rootCmd = &cobra.Command{
		Use:   "yt2speech [URL]",
		Short: "Convert YouTube video transcripts to natural speech",
		Long: fmt.Sprintf(
			"\nFetch a YouTube transcript, %s it with a language model, and\nsynthesize it into a single audio file.",
			keyword("enhance"),
		),
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE:         execute,
	}

	voicesCmd = &cobra.Command{
		Use:   "voices",
		Short: "List the TTS voices available to your API key",
		Args:  cobra.NoArgs,
		RunE:  listVoices,
	}
)

func init() {
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: "+defaultConfigHint()+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "transcript_audio.mp3", "output audio file")
	rootCmd.Flags().StringVar(&voiceFlag, "voice", "", "TTS voice ID (default: first available voice)")
	rootCmd.Flags().BoolVar(&noEnhance, "no-enhance", false, "skip language-model enhancement")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the transcript cache")

	rootCmd.AddCommand(voicesCmd, configCmd)
}

func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if cfg.Debug || debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func execute(cmd *cobra.Command, args []string) error {
	// Reject malformed input before touching any configuration or
	// network collaborator.
	videoID, err := transcript.ExtractVideoID(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()

	var store cache.Store
	if !noCache && cfg.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("transcript cache unavailable, continuing without it", "err", err)
		} else {
			defer redisStore.Close()
			store = redisStore
		}
	}
	manager := cache.NewManager(store, logger)

	fetcher := transcript.NewCachedFetcher(
		transcript.NewYouTubeClient(cfg.Language, logger), manager, cfg.CacheTTL)

	var enhancer enhance.Enhancer = enhance.Passthrough{}
	if !noEnhance && cfg.OpenAIAPIKey != "" {
		enhancer = enhance.NewOpenAI(cfg.OpenAIAPIKey, cfg.EnhanceModel)
	} else if !noEnhance {
		logger.Info("no OPENAI_API_KEY set, skipping enhancement")
	}

	synth := speech.NewElevenLabs(speech.ElevenLabsConfig{APIKey: cfg.ElevenLabsAPIKey})

	voice := voiceFlag
	if voice == "" {
		voice = cfg.Voice
	}
	if voice == "" {
		voice, err = firstVoice(cmd, synth)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stderr, subtle("Fetching transcript for ")+keyword(videoID))
	segments, err := fetcher.Fetch(ctx, videoID)
	if err != nil {
		return fmt.Errorf("fetching transcript: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		MaxChunkLen: cfg.MaxChunkLen,
		Concurrency: cfg.ConcurrentTasks,
	}, enhancer, synth, logger)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for snap := range p.Events() {
			fmt.Fprintf(os.Stderr, "\r%s %d/%d chunks (%.0f%%), about %s remaining ",
				subtle("Synthesizing"), snap.Completed, snap.Total,
				snap.Percent(), estimate.FormatDuration(snap.Remaining))
		}
		fmt.Fprintln(os.Stderr)
	}()

	audio, err := p.Run(ctx, segments, voice)
	<-done
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, audio, 0o644); err != nil {
		return fmt.Errorf("writing audio file: %w", err)
	}

	fmt.Printf("%s %s (%s)\n",
		subtle("Wrote"), keyword(outputPath), humanize.Bytes(uint64(len(audio))))
	return nil
}

func firstVoice(cmd *cobra.Command, synth *speech.ElevenLabs) (string, error) {
	voices, err := synth.Voices(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("listing voices: %w", err)
	}
	if len(voices) == 0 {
		return "", fmt.Errorf("no voices available; pass one with --voice")
	}
	return voices[0].ID, nil
}

func listVoices(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.ElevenLabsAPIKey == "" {
		return fmt.Errorf("ELEVENLABS_API_KEY is required")
	}

	synth := speech.NewElevenLabs(speech.ElevenLabsConfig{APIKey: cfg.ElevenLabsAPIKey})
	voices, err := synth.Voices(cmd.Context())
	if err != nil {
		return err
	}

	for _, v := range voices {
		fmt.Printf("%s  %s\n", keyword(v.ID), v.Name)
	}
	return nil
}

func defaultConfigHint() string {
	path, err := config.DefaultPath()
	if err != nil {
		return "~/.config/yt2speech/config.yml"
	}
	return path
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
