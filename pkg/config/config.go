package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string

	// Delegated permission executor
	ExecutorEndpoint string
	ExecutorAPIKey   string

	// Remote function ids, one per record family that needs post-creation
	// read grants
	GrantFnUserNotifications      string
	GrantFnCommunityNotifications string
	GrantFnInteractions           string
	GrantFnComments               string
	GrantFnFeedback               string
	GrantFnReplies                string

	PingBatchSize int
}

// Load reads the configuration from the environment. A .env file in the
// working directory is merged in first so values defined only there are
// visible to every lookup below.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "craftify"),

		ExecutorEndpoint: getEnv("EXECUTOR_ENDPOINT", "http://localhost:9100"),
		ExecutorAPIKey:   getEnv("EXECUTOR_API_KEY", ""),

		GrantFnUserNotifications:      getEnv("GRANT_FN_USER_NOTIFICATIONS", "grant-user-notification"),
		GrantFnCommunityNotifications: getEnv("GRANT_FN_COMMUNITY_NOTIFICATIONS", "grant-community-notification"),
		GrantFnInteractions:           getEnv("GRANT_FN_INTERACTIONS", "grant-interaction"),
		GrantFnComments:               getEnv("GRANT_FN_COMMENTS", "grant-comment"),
		GrantFnFeedback:               getEnv("GRANT_FN_FEEDBACK", "grant-feedback"),
		GrantFnReplies:                getEnv("GRANT_FN_REPLIES", "grant-reply"),

		PingBatchSize: getEnvInt("PING_BATCH_SIZE", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
