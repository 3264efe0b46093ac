package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

type (
	ServerConfig struct {
		Host               string
		Address            string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	RedisConfig struct {
		Address  string
		Password string
		DB       int
		FiredTTL time.Duration
	}

	KafkaConfig struct {
		Brokers     string
		GroupID     string
		EventsTopic string
	}

	WorkerConfig struct {
		PollInterval time.Duration
		Tolerance    time.Duration
		Horizon      time.Duration
	}

	NotificationConfig struct {
		PreviewLength int
		DefaultExpiry time.Duration // 0 = notifications never expire
	}

	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		SecretKey        string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server       ServerConfig
		Database     DatabaseConfig
		Redis        RedisConfig
		Kafka        KafkaConfig
		Worker       WorkerConfig
		Notification NotificationConfig
	}
)

func (c DatabaseConfig) Address() string { return c.Host + ":" + c.Port }

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Arifa")
	v.SetDefault("secretKey", "pq3=wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverShutdownTimeout", 20*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("redisAddress", "localhost:6379")
	v.SetDefault("redisFiredTTL", 30*24*time.Hour)
	v.SetDefault("kafkaGroupID", "arifa-worker")
	v.SetDefault("kafkaEventsTopic", "lms.events")
	v.SetDefault("workerPollInterval", time.Minute)
	v.SetDefault("workerTolerance", 5*time.Minute)
	v.SetDefault("workerHorizon", 8*24*time.Hour)
	v.SetDefault("notifPreviewLength", 100)
	v.SetDefault("notifDefaultExpiry", time.Duration(0))

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Address:            v.GetString("serverAddress"),
			ShutdownTimeout:    v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Name:          v.GetString("databaseName"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetString("databasePort"),
			DisableTLS:    v.GetBool("databaseDisableTLS"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redisAddress"),
			Password: v.GetString("redisPassword"),
			DB:       v.GetInt("redisDB"),
			FiredTTL: v.GetDuration("redisFiredTTL"),
		},
		Kafka: KafkaConfig{
			Brokers:     v.GetString("kafkaBrokers"),
			GroupID:     v.GetString("kafkaGroupID"),
			EventsTopic: v.GetString("kafkaEventsTopic"),
		},
		Worker: WorkerConfig{
			PollInterval: v.GetDuration("workerPollInterval"),
			Tolerance:    v.GetDuration("workerTolerance"),
			Horizon:      v.GetDuration("workerHorizon"),
		},
		Notification: NotificationConfig{
			PreviewLength: v.GetInt("notifPreviewLength"),
			DefaultExpiry: v.GetDuration("notifDefaultExpiry"),
		},
	}
}
