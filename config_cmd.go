package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/yt2speech/internal/config"
)

const defaultConfig = `# URL of the Redis server backing the transcript cache.
# Leave empty to disable caching.
redis_url: "redis://localhost:6379"

# Maximum transcript chunk length in characters.
max_chunk_length: 500

# Number of chunks processed concurrently.
concurrent_tasks: 5

# How long fetched transcripts stay cached.
cache_ttl: 24h

# Chat model used for transcript enhancement.
enhance_model: "gpt-4o-mini"

# Preferred transcript language code.
language: "en"

# Default TTS voice ID. Run 'yt2speech voices' to list options.
voice: ""

# Enable debug logging.
debug: false
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create and show the configuration file",
	Long:  "Write a default configuration file if none exists, then print its location.",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		path := configFile
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
				return fmt.Errorf("writing default config: %w", err)
			}
			fmt.Println(subtle("Wrote default config to ") + keyword(path))
			return nil
		}

		fmt.Println(subtle("Config file: ") + keyword(path))
		return nil
	},
}
