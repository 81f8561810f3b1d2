package config

import (
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/gallerix/artwork-marketplace/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool
	LogPath string

	ServerPort string
	HealthPort string

	// Owner is the genesis super-admin principal.
	Owner string

	// MaxPrice overrides the default listing price cap when set
	// (smallest currency unit, decimal string).
	MaxPrice string

	MetadataRetries int
	MetadataTimeout int
	IpfsHosts       []string

	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
}

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	QueueUrl  string
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	BulkPersistCount int
	Refresh          string
}

var ipfsHosts = []string{
	"https://gateway.pinata.cloud",
	"https://cloudflare-ipfs.com",
	"https://gateway.ipfs.io",
}

func Init(app string) {
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(app)
}

func initLogger(app string) {
	cfg := Get()
	log.NewLogger(cfg.LogPath+"/"+app+".log", cfg.Debug)
}

func Get() *Config {
	return &Config{
		Env:             getString("ENV", ""),
		Network:         getString("NETWORK", "local"),
		Index:           getString("INDEX_NAME", "marketplace"),
		Debug:           getBool("DEBUG", false),
		LogPath:         getString("LOG_PATH", "./var/logs"),
		ServerPort:      getString("SERVER_PORT", "8080"),
		HealthPort:      getString("HEALTH_PORT", "8081"),
		Owner:           getString("MARKETPLACE_OWNER", ""),
		MaxPrice:        getString("MARKETPLACE_MAX_PRICE", ""),
		MetadataRetries: getInt("METADATA_RETRIES", 3),
		MetadataTimeout: getInt("METADATA_TIMEOUT", 10),
		IpfsHosts:       getSlice("IPFS_HOSTS", ipfsHosts, ","),
		Aws: AwsConfig{
			AccessKey: getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getString("AWS_SECRET_KEY_ID", ""),
			Region:    getString("AWS_REGION", ""),
			QueueUrl:  getString("AWS_QUEUE_URL", ""),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
	}
}

// MaxPriceValue parses the configured price cap, or nil when unset.
func (c *Config) MaxPriceValue() *big.Int {
	if c.MaxPrice == "" {
		return nil
	}

	value, ok := new(big.Int).SetString(c.MaxPrice, 10)
	if !ok {
		zap.L().With(zap.String("maxPrice", c.MaxPrice)).Warn("Invalid MARKETPLACE_MAX_PRICE")
		return nil
	}

	return value
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}

	return val
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
