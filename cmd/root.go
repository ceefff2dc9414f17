package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bizsite/auth"
	"bizsite/config"
	"bizsite/content"
	"bizsite/crypto"
	"bizsite/storage"
)

var (
	configPath string
	debug      bool

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bizsite",
	Short: "Content and admin server for a small business website",
	Long: `bizsite serves the editable content of a business website and the
single-admin API used to change it. The same storage can be inspected and
edited from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = newLogger(debug); err != nil {
			return err
		}
		if cfg, err = config.LoadConfig(configPath, logger); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "JSON config file (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable development logging")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(adminCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Error loading .env file: %v", err)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// stores holds everything opened against the configured storage.
type stores struct {
	db      *storage.SQL
	creds   *auth.CredentialStore
	content *content.Store
}

func openStores() (*stores, error) {
	db, err := storage.OpenSQL(cfg.StorageDriver, cfg.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	var records storage.Storage = db
	if cfg.EncryptStorage {
		if cfg.EphemeralKey() {
			db.Close()
			return nil, errors.New("encrypt_storage needs a session_key that survives restarts")
		}
		enc, err := storage.NewEncrypted(db, crypto.ServerKey(cfg.SessionKey, "storage"))
		if err != nil {
			db.Close()
			return nil, err
		}
		records = enc
	}

	hasher, err := crypto.HasherByName(cfg.PasswordHasher)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("Storage opened",
		zap.String("driver", cfg.StorageDriver),
		zap.Bool("encrypted", cfg.EncryptStorage),
		zap.String("hasher", cfg.PasswordHasher))

	return &stores{
		db: db,
		creds: auth.NewCredentialStore(records,
			auth.WithHasher(hasher),
			auth.WithSessionTTL(cfg.SessionTTL()),
			auth.WithLogger(logger)),
		content: content.NewStore(records, logger),
	}, nil
}

func (s *stores) Close() error {
	return s.db.Close()
}
