package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
)

const placeholderSessionKey = "CHANGE_ME_IN_PRODUCTION"

type Config struct {
	AppName         string `json:"app_name"`
	ListenIP        string `json:"listen_ip"`
	ListenPort      int    `json:"listen_port"`
	SessionKey      string `json:"session_key"`
	StorageDriver   string `json:"storage_driver"`
	StorageDSN      string `json:"storage_dsn"`
	PasswordHasher  string `json:"password_hasher"`
	EncryptStorage  bool   `json:"encrypt_storage"`
	RequireCaptcha  bool   `json:"require_captcha"`
	SecureCookies   bool   `json:"secure_cookies"`
	SessionTTLHours int    `json:"session_ttl_hours"`
	PollIntervalMS  int    `json:"poll_interval_ms"`

	ephemeralKey bool
}

func Default() Config {
	return Config{
		AppName:         "bizsite",
		ListenIP:        "127.0.0.1",
		ListenPort:      8080,
		StorageDriver:   "sqlite3",
		StorageDSN:      "./bizsite.db",
		PasswordHasher:  "bcrypt",
		SessionTTLHours: 24,
		PollIntervalMS:  1000,
	}
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// EphemeralKey reports whether SessionKey was generated for this process.
func (c Config) EphemeralKey() bool {
	return c.ephemeralKey
}

// LoadConfig reads a JSON config file over Default(), then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string, logger *zap.Logger) (Config, error) {
	cfg := Default()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer file.Close()

		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.ensureSessionKey(logger); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BIZSITE_SESSION_KEY"); v != "" {
		c.SessionKey = v
	}
	if v := os.Getenv("BIZSITE_STORAGE_DRIVER"); v != "" {
		c.StorageDriver = v
	}
	if v := os.Getenv("BIZSITE_STORAGE_DSN"); v != "" {
		c.StorageDSN = v
	}
}

// ensureSessionKey replaces a missing or placeholder key with a random one.
// Cookies and encrypted storage written under it do not survive a restart.
func (c *Config) ensureSessionKey(logger *zap.Logger) error {
	if c.SessionKey != "" && c.SessionKey != placeholderSessionKey {
		return nil
	}
	if logger != nil {
		logger.Warn("No session key configured, generating a random key; sessions will be invalidated on restart")
	}
	randomKey := make([]byte, 32)
	if _, err := rand.Read(randomKey); err != nil {
		return err
	}
	c.SessionKey = hex.EncodeToString(randomKey)
	c.ephemeralKey = true
	return nil
}
