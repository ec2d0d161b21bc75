package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Sosthene00/bitcoin-pro/pkg/explorer"
	"github.com/Sosthene00/bitcoin-pro/pkg/explorer/esplora"
)

const (
	// ExplorerEndpointKey is the endpoint where the Electrs REST API is listening
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// ExplorerRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// DatadirKey is the local data directory to store the account registry
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// LookupLimitKey represents the number of requests per second the
	// resolution engine makes to the explorer
	LookupLimitKey = "LOOKUP_LIMIT"
	// LookupModeKey is the default scan depth of a resolution pass, one of
	// "all", "first20" or "first50"
	LookupModeKey = "LOOKUP_MODE"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("bitcoin-pro", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("BPRO")
	vip.AutomaticEnv()

	vip.SetDefault(ExplorerEndpointKey, "https://blockstream.info/api")
	vip.SetDefault(ExplorerRequestTimeoutKey, 15000)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(LookupLimitKey, 10)
	vip.SetDefault(LookupModeKey, "first20")

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetFloat ...
func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetDatadir returns the data directory
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory holding the badger stores
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

//GetExplorer ...
func GetExplorer() (explorer.Service, error) {
	endpoint := GetString(ExplorerEndpointKey)
	reqTimeout := time.Duration(GetInt(ExplorerRequestTimeoutKey)) * time.Millisecond
	return esplora.NewService(endpoint, reqTimeout)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	explorerEndpoint := GetString(ExplorerEndpointKey)
	if _, err := url.Parse(explorerEndpoint); err != nil {
		return fmt.Errorf("explorer endpoint is not a valid url: %s", err)
	}

	lookupLimit := GetFloat(LookupLimitKey)
	if lookupLimit <= 0 {
		return fmt.Errorf("lookup limit must be a positive number of requests")
	}
	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
