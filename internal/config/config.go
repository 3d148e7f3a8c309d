package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// LedgerURLKey is the url of the ledger JSON-RPC endpoint, ws:// enables
	// event subscriptions
	LedgerURLKey = "LEDGER_URL"
	// ChainIDKey is the expected chain identifier, validated against the
	// endpoint at startup when set
	ChainIDKey = "CHAIN_ID"
	// SafeAddressKey is the address of the deployed multisig account contract
	SafeAddressKey = "SAFE_ADDRESS"
	// RouterAddressKey is the address of the deployed Router contract
	RouterAddressKey = "ROUTER_ADDRESS"
	// PrivateKeysKey is the comma separated list of hex encoded owner private
	// keys used for signing multisig transactions
	PrivateKeysKey = "PRIVATE_KEYS"
	// DatadirKey is the local data directory to store the ingested events
	DatadirKey = "DATA_DIR_PATH"
	// DbTypeKey selects the storage backend, either "badger" or "inmemory"
	DbTypeKey = "DB_TYPE"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// CrawlIntervalKey is the interval in milliseconds to be used when
	// watching the ledger for new events
	CrawlIntervalKey = "CRAWL_INTERVAL"
	// CrawlLimitKey represents number of requests per second that crawler
	// makes to the ledger endpoint
	CrawlLimitKey = "CRAWL_LIMIT"
	// StartBlockKey is the height event ingestion starts from, genesis when 0
	StartBlockKey = "START_BLOCK"
	// ConfirmationTimeoutKey is the duration in seconds to wait for a
	// submitted tx to be included before giving up with an ambiguous outcome
	ConfirmationTimeoutKey = "CONFIRMATION_TIMEOUT"
	// PollingIntervalKey is the interval in milliseconds between receipt
	// polls while waiting for inclusion
	PollingIntervalKey = "POLLING_INTERVAL"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("tideth", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("TIDETH")
	vip.AutomaticEnv()

	vip.SetDefault(LedgerURLKey, "http://localhost:8545")
	vip.SetDefault(ChainIDKey, 0)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DbTypeKey, "badger")
	vip.SetDefault(CrawlIntervalKey, 5000)
	vip.SetDefault(CrawlLimitKey, 10)
	vip.SetDefault(StartBlockKey, 0)
	vip.SetDefault(ConfirmationTimeoutKey, 120)
	vip.SetDefault(PollingIntervalKey, 1000)

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

//GetUint64 ...
func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetSafeAddress returns the configured multisig account address.
func GetSafeAddress() common.Address {
	return common.HexToAddress(GetString(SafeAddressKey))
}

// GetRouterAddress returns the configured Router address.
func GetRouterAddress() common.Address {
	return common.HexToAddress(GetString(RouterAddressKey))
}

// GetPrivateKeys returns the configured owner private keys, hex encoded.
func GetPrivateKeys() []string {
	var keys []string
	if raw := GetString(PrivateKeysKey); raw != "" {
		for _, key := range strings.Split(raw, ",") {
			keys = append(keys, strings.TrimSpace(key))
		}
	}
	return keys
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if dbType := GetString(DbTypeKey); dbType != "badger" && dbType != "inmemory" {
		return fmt.Errorf("db type must be either 'badger' or 'inmemory'")
	}

	for _, key := range []string{SafeAddressKey, RouterAddressKey} {
		if addr := GetString(key); addr != "" && !common.IsHexAddress(addr) {
			return fmt.Errorf("%s is not a valid address", key)
		}
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(datadir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
