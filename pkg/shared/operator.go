package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/spf13/viper"
)

const DefaultMaxWaitRounds uint64 = 4

type OperatorConfig struct {
	Network         string
	AlgodAddress    string
	AlgodToken      string
	CreatorMnemonic string
	MaxWaitRounds   uint64
	LogEnv          string
}

// OperatorConfigFromEnv loads the operator configuration and requires a
// creator mnemonic.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	config, err := LoadOperatorConfig()
	if err != nil {
		return OperatorConfig{}, err
	}
	if config.CreatorMnemonic == "" {
		return OperatorConfig{}, fmt.Errorf("MNEMONIC_CREATOR is required")
	}
	return config, nil
}

// LoadOperatorConfig reads the environment, falling back to the nearest .env
// file for keys the environment does not set.
func LoadOperatorConfig() (OperatorConfig, error) {
	settings, err := loadSettings(findDotEnv())
	if err != nil {
		return OperatorConfig{}, err
	}
	return operatorConfigFromSettings(settings)
}

func loadSettings(dotEnvPath string) (*viper.Viper, error) {
	settings := viper.New()
	settings.AutomaticEnv()
	if dotEnvPath == "" {
		return settings, nil
	}

	settings.SetConfigFile(dotEnvPath)
	settings.SetConfigType("env")
	if err := settings.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dotEnvPath, err)
	}
	return settings, nil
}

func operatorConfigFromSettings(settings *viper.Viper) (OperatorConfig, error) {
	settings.SetDefault("algod_wait_rounds", DefaultMaxWaitRounds)

	network, err := NormalizeNetwork(firstNonEmpty(settings, "ALGORAND_NETWORK", "NETWORK"))
	if err != nil {
		return OperatorConfig{}, err
	}

	server := firstNonEmpty(settings, "ALGOD_SERVER", "ALGOD_ADDRESS")
	token := firstNonEmpty(settings, "ALGOD_TOKEN")
	creatorMnemonic := firstNonEmpty(settings, "MNEMONIC_CREATOR", "CREATOR_MNEMONIC")

	prefix := strings.ToUpper(network) + "_"
	if scoped := firstNonEmpty(settings, prefix+"ALGOD_SERVER"); scoped != "" {
		server = scoped
	}
	if scoped := firstNonEmpty(settings, prefix+"ALGOD_TOKEN"); scoped != "" {
		token = scoped
	}
	if scoped := firstNonEmpty(settings, prefix+"MNEMONIC_CREATOR"); scoped != "" {
		creatorMnemonic = scoped
	}

	address := ResolveAlgodAddress(server, firstNonEmpty(settings, "ALGOD_PORT"))
	if address == "" {
		address, err = DefaultAlgodAddress(network)
		if err != nil {
			return OperatorConfig{}, err
		}
	}
	if token == "" && network == NetworkLocalnet {
		token = LocalnetToken
	}

	maxWaitRounds := settings.GetUint64("algod_wait_rounds")
	if maxWaitRounds == 0 {
		return OperatorConfig{}, fmt.Errorf("ALGOD_WAIT_ROUNDS must be a positive integer")
	}

	return OperatorConfig{
		Network:         network,
		AlgodAddress:    address,
		AlgodToken:      token,
		CreatorMnemonic: creatorMnemonic,
		MaxWaitRounds:   maxWaitRounds,
		LogEnv:          firstNonEmpty(settings, "LOG_ENV", "APP_ENV"),
	}, nil
}

func findDotEnv() string {
	startPaths := make([]string, 0, 2)
	if cwd, err := os.Getwd(); err == nil {
		startPaths = append(startPaths, cwd)
	}
	if _, currentFile, _, ok := runtime.Caller(0); ok {
		startPaths = append(startPaths, filepath.Dir(currentFile))
	}

	for _, start := range startPaths {
		current := start
		for {
			candidate := filepath.Join(current, ".env")
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
			parent := filepath.Dir(current)
			if parent == current {
				break
			}
			current = parent
		}
	}
	return ""
}

func firstNonEmpty(settings *viper.Viper, keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(settings.GetString(strings.ToLower(key)))
		if value != "" {
			return value
		}
	}
	return ""
}

// ParseMnemonic derives an account from a 25-word mnemonic. Extra whitespace
// between words is ignored.
func ParseMnemonic(raw string) (crypto.Account, error) {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return crypto.Account{}, fmt.Errorf("mnemonic cannot be empty")
	}

	privateKey, err := mnemonic.ToPrivateKey(strings.Join(words, " "))
	if err != nil {
		return crypto.Account{}, fmt.Errorf("failed to parse mnemonic: %w", err)
	}
	account, err := crypto.AccountFromPrivateKey(privateKey)
	if err != nil {
		return crypto.Account{}, fmt.Errorf("failed to derive account from mnemonic: %w", err)
	}
	return account, nil
}
