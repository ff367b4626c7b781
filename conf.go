package astrosched

import (
	"fmt"
	"os"
	"path"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel   string
	LogPath    string
	TimeFormat string
	// JournalURL is the sqlite file notifications are journaled to. Empty
	// disables the journal.
	JournalURL string
	DevMode    bool
}

const (
	KeyLogLevel   = "ASTROSCHED_LOG_LEVEL"
	KeyLogPath    = "ASTROSCHED_LOG_PATH"
	KeyTimeFormat = "ASTROSCHED_TIME_FORMAT"
	KeyJournalURL = "ASTROSCHED_JOURNAL_URL"
	KeyDevMode    = "ASTROSCHED_DEV_MODE"
)

const (
	DefaultLogLevel   = "WARN"
	DefaultTimeFormat = TimeLayout
)

var (
	userHome, _    = os.UserHomeDir()
	DefaultLogPath = path.Join(userHome, ".astrosched", "astrosched.log")
)

// DefaultConfFile is where LoadConfig looks when no file is given.
func DefaultConfFile() string {
	cfgDir, _ := os.UserConfigDir()
	return path.Join(cfgDir, "astrosched", "astrosched.conf")
}

// LoadConfig resolves the configuration from the environment, then confFile,
// then defaults. A default conf file is written if confFile does not exist.
func LoadConfig(confFile string) (Config, error) {
	if confFile == "" {
		confFile = DefaultConfFile()
	}

	confFromEnv := Config{
		LogLevel:   os.Getenv(KeyLogLevel),
		LogPath:    os.Getenv(KeyLogPath),
		TimeFormat: os.Getenv(KeyTimeFormat),
		JournalURL: os.Getenv(KeyJournalURL),
		DevMode:    os.Getenv(KeyDevMode) != "",
	}

	if confFromEnv.DevMode {
		confFromEnv.LogLevel = "DEBUG"
		confFromEnv.LogPath = path.Join(os.TempDir(), "astrosched-dev.log")
	}

	// load file
	if _, err := os.Stat(confFile); err != nil {
		if err := writeDefaultConf(confFile); err != nil {
			return Config{}, fmt.Errorf("failed to create default conf file: %w", err)
		}
	}
	vals, err := godotenv.Read(confFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read conf file %s: %w", confFile, err)
	}
	confFromFile := Config{
		LogLevel:   vals[KeyLogLevel],
		LogPath:    vals[KeyLogPath],
		TimeFormat: vals[KeyTimeFormat],
		JournalURL: vals[KeyJournalURL],
	}

	return Config{
		LogLevel:   coalesce(confFromEnv.LogLevel, confFromFile.LogLevel, DefaultLogLevel),
		LogPath:    coalesce(confFromEnv.LogPath, confFromFile.LogPath, DefaultLogPath),
		TimeFormat: coalesce(confFromEnv.TimeFormat, confFromFile.TimeFormat, DefaultTimeFormat),
		JournalURL: coalesce(confFromEnv.JournalURL, confFromFile.JournalURL),
		DevMode:    confFromEnv.DevMode,
	}, nil
}

func writeDefaultConf(confFile string) error {
	if err := os.MkdirAll(path.Dir(confFile), 0o744); err != nil {
		return err
	}
	return godotenv.Write(map[string]string{
		KeyLogLevel:   DefaultLogLevel,
		KeyLogPath:    DefaultLogPath,
		KeyTimeFormat: DefaultTimeFormat,
	}, confFile)
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
