package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultHost       = "0.0.0.0"
	DefaultPort       = 10000
	DefaultClientDir  = "client"
	DefaultEntryPage  = "teacher.html"
	DefaultSTTModel   = "whisper-1"
	DefaultHintsModel = "gpt-4.1-nano"
	DefaultBodyLimit  = 25 * 1024 * 1024
)

type Config struct {
	Host      string
	Port      int
	ClientDir string
	EntryPage string
	BodyLimit int

	OpenAIAPIKey  string
	OpenAIBaseURL string
	STTModel      string
	HintsModel    string

	LogJSON    bool
	LogVerbose bool

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// flag name -> viper key
var flagKeys = map[string]string{
	"host":       "host",
	"port":       "port",
	"client-dir": "client_dir",
	"verbose":    "log_verbose",
	"json":       "log_json",
}

// BindFlags registers the flags Load understands.
func BindFlags(flags *pflag.FlagSet) {
	flags.String("host", DefaultHost, "Interface to bind (env HOST)")
	flags.Int("port", DefaultPort, "Port to listen on (env PORT)")
	flags.String("client-dir", DefaultClientDir, "Static client directory (env CLIENT_DIR)")
	flags.Bool("verbose", false, "Enable debug logs (env LOG_VERBOSE)")
	flags.Bool("json", false, "Enable JSON logging (env LOG_JSON)")
}

// Load reads .env, then the environment, then any flags the user set explicitly.
// flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	loaded := godotenv.Load() == nil

	v := viper.New()
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("client_dir", DefaultClientDir)
	v.SetDefault("entry_page", DefaultEntryPage)
	v.SetDefault("body_limit", DefaultBodyLimit)
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("stt_model", DefaultSTTModel)
	v.SetDefault("hints_model", DefaultHintsModel)
	v.SetDefault("log_json", false)
	v.SetDefault("log_verbose", false)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, errors.Wrapf(err, "bind flag %q", name)
			}
		}
	}

	cfg := Config{
		Host:          strings.TrimSpace(v.GetString("host")),
		Port:          v.GetInt("port"),
		ClientDir:     v.GetString("client_dir"),
		EntryPage:     v.GetString("entry_page"),
		BodyLimit:     v.GetInt("body_limit"),
		OpenAIAPIKey:  strings.TrimSpace(v.GetString("openai_api_key")),
		OpenAIBaseURL: strings.TrimSpace(v.GetString("openai_base_url")),
		STTModel:      v.GetString("stt_model"),
		HintsModel:    v.GetString("hints_model"),
		LogJSON:       v.GetBool("log_json"),
		LogVerbose:    v.GetBool("log_verbose"),
		EnvFileLoaded: loaded,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Host == "" {
		return errors.New("host must not be empty")
	}
	if c.EntryPage == "" {
		return errors.New("entry page must not be empty")
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("invalid body limit %d", c.BodyLimit)
	}
	return nil
}

// Addr is the host:port pair passed to the listener.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientRootExists reports whether the static client directory is present.
func (c Config) ClientRootExists() bool {
	info, err := os.Stat(c.ClientDir)
	return err == nil && info.IsDir()
}
