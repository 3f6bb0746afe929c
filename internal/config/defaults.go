package config

const (
	defaultConfigPath   = "~/.config/audiosplit/config.toml"
	projectConfigName   = "audiosplit.toml"
	defaultOutputDir    = "output"
	defaultFFmpeg       = "ffmpeg"
	defaultFFprobe      = "ffprobe"
	defaultExtension    = "mp3"
	defaultEncoding     = "auto"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	maxTranscodeTimeout = 24 * 60 * 60
	extensionFromSource = "source"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Tracklist: Tracklist{
			Encoding: defaultEncoding,
		},
		Output: Output{
			Extension: defaultExtension,
		},
		Validation: Validation{
			EnforceOrder:  true,
			EnforceBounds: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
