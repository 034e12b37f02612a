package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"caption-studio/internal/appdirs"

	"github.com/BurntSushi/toml"
)

type App struct {
	Proxy       string   `toml:"proxy"`
	ParsedProxy *url.URL `toml:"-"`
}

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type AssemblyaiConfig struct {
	ApiKey  string `toml:"api_key"`
	BaseUrl string `toml:"base_url"`
}

type TranscribeConfig struct {
	Provider   string           `toml:"provider"`
	Assemblyai AssemblyaiConfig `toml:"assemblyai"`
}

type LlmConfig struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type StorageConfig struct {
	// Driver selects the export job repository: "memory" (default) or "sqlite".
	Driver string `toml:"driver"`
}

type ExportConfig struct {
	VideoCodec string `toml:"video_codec"`
}

type Config struct {
	App        App              `toml:"app"`
	Server     Server           `toml:"server"`
	Transcribe TranscribeConfig `toml:"transcribe"`
	Llm        LlmConfig        `toml:"llm"`
	Storage    StorageConfig    `toml:"storage"`
	Export     ExportConfig     `toml:"export"`
}

var Conf Config

var resolveConfigPath = func() (string, error) {
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return dirs.ConfigFile, nil
}

func defaultConfig() Config {
	return Config{
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Transcribe: TranscribeConfig{
			Provider: "assemblyai",
			Assemblyai: AssemblyaiConfig{
				BaseUrl: "https://api.assemblyai.com/v2",
			},
		},
		Llm: LlmConfig{
			BaseUrl: "https://openrouter.ai/api/v1",
			Model:   "microsoft/phi-3-mini-128k-instruct:free",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Export: ExportConfig{
			VideoCodec: "libx264",
		},
	}
}

// LoadOrCreateConfig reads the TOML config, writing the defaults first when no
// file exists yet. It reports whether a new file was created.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, err
	}

	if _, err = os.Stat(configPath); os.IsNotExist(err) {
		Conf = defaultConfig()
		if err = SaveConfig(); err != nil {
			return false, fmt.Errorf("write default config: %w", err)
		}
		return true, nil
	} else if err != nil {
		return false, err
	}

	Conf = defaultConfig()
	if _, err = toml.DecodeFile(configPath, &Conf); err != nil {
		return false, fmt.Errorf("decode config %s: %w", configPath, err)
	}
	return false, nil
}

// SaveConfig writes the current configuration back to disk, creating parent
// directories as needed.
func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(Conf)
}

// CheckConfig validates the loaded configuration. Missing collaborator
// credentials are not fatal here: transcription rejects requests at call time
// and transliteration degrades to the local substitution table.
func CheckConfig() error {
	if Conf.Server.Port <= 0 || Conf.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", Conf.Server.Port)
	}
	if Conf.Storage.Driver != "" && Conf.Storage.Driver != "memory" && Conf.Storage.Driver != "sqlite" {
		return fmt.Errorf("unknown storage driver: %s", Conf.Storage.Driver)
	}
	if Conf.App.Proxy != "" {
		parsed, err := url.Parse(Conf.App.Proxy)
		if err != nil {
			return fmt.Errorf("invalid proxy address: %w", err)
		}
		Conf.App.ParsedProxy = parsed
	}
	if Conf.Export.VideoCodec == "" {
		Conf.Export.VideoCodec = "libx264"
	}
	return nil
}
