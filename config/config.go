package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"recipehub/models"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Server      Server
	Database    Database
	Auth        Auth
	Spoonacular Spoonacular
	MealDB      MealDB
	Storage     Storage
	AWS         AWS
	RabbitMQ    RabbitMQ
	Log         Log
}

type Server struct {
	Port        int
	CORSOrigins []string
}

type Database struct {
	Client      string // "postgres" | "mysql"
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxIdle     int
	MaxOpenConn int
	MaxLifeTime time.Duration
	LogEnable   bool
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
	ResetTTL  time.Duration
}

type Spoonacular struct {
	BaseURL string
	APIKey  string
}

type MealDB struct {
	BaseURL string
}

type Storage struct {
	Driver string // "file" | "s3"
	Dir    string
	Bucket string
	Prefix string
}

type AWS struct {
	Region   string
	SESEmail string
}

type RabbitMQ struct {
	URL      string
	Exchange string
}

type Log struct {
	Level          string
	JSON           bool
	ElkEnable      bool
	ElkURL         string
	ElkIndex       string
	LogstashEnable bool
	LogstashURL    string
}

// Load reads config.yml from the working directory, falling back to
// environment variables (database.host -> DATABASE_HOST). A .env file is
// loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("database.client", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.max_open_conn", 20)
	v.SetDefault("database.max_life_time", "30m")
	v.SetDefault("auth.token_ttl", "168h")
	v.SetDefault("auth.reset_ttl", "15m")
	v.SetDefault("spoonacular.base_url", "https://api.spoonacular.com")
	v.SetDefault("mealdb.base_url", "https://www.themealdb.com/api/json/v1/1")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.prefix", "users")
	v.SetDefault("rabbitmq.exchange", "recipehub.events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.elk.index", "recipehub")
}

func fromViper(v *viper.Viper) *Config {
	var c Config
	c.Server.Port = v.GetInt("server.port")
	c.Server.CORSOrigins = splitList(v.GetString("server.cors_origins"))

	c.Database.Client = strings.ToLower(v.GetString("database.client"))
	c.Database.Host = v.GetString("database.host")
	c.Database.Port = v.GetString("database.port")
	c.Database.User = v.GetString("database.user")
	c.Database.Password = v.GetString("database.password")
	c.Database.Name = v.GetString("database.name")
	c.Database.SSLMode = v.GetString("database.sslmode")
	c.Database.MaxIdle = v.GetInt("database.max_idle")
	c.Database.MaxOpenConn = v.GetInt("database.max_open_conn")
	c.Database.MaxLifeTime = v.GetDuration("database.max_life_time")
	c.Database.LogEnable = v.GetBool("database.log_enable")

	c.Auth.JWTSecret = v.GetString("auth.jwt_secret")
	c.Auth.TokenTTL = v.GetDuration("auth.token_ttl")
	c.Auth.ResetTTL = v.GetDuration("auth.reset_ttl")

	c.Spoonacular.BaseURL = v.GetString("spoonacular.base_url")
	c.Spoonacular.APIKey = v.GetString("spoonacular.api_key")
	c.MealDB.BaseURL = v.GetString("mealdb.base_url")

	c.Storage.Driver = strings.ToLower(v.GetString("storage.driver"))
	c.Storage.Dir = v.GetString("storage.dir")
	c.Storage.Bucket = v.GetString("storage.bucket")
	c.Storage.Prefix = v.GetString("storage.prefix")

	c.AWS.Region = v.GetString("aws.region")
	c.AWS.SESEmail = v.GetString("aws.ses_email")

	c.RabbitMQ.URL = v.GetString("rabbitmq.url")
	c.RabbitMQ.Exchange = v.GetString("rabbitmq.exchange")

	c.Log.Level = v.GetString("log.level")
	c.Log.JSON = v.GetBool("log.json")
	c.Log.ElkEnable = v.GetBool("log.elk.enable")
	c.Log.ElkURL = v.GetString("log.elk.url")
	c.Log.ElkIndex = v.GetString("log.elk.index")
	c.Log.LogstashEnable = v.GetBool("log.logstash.enable")
	c.Log.LogstashURL = v.GetString("log.logstash.url")
	return &c
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DSN builds the driver-specific connection string.
func (d Database) DSN() (string, error) {
	switch d.Client {
	case "postgres", "postgresql", "":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode), nil
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = d.Host + ":" + d.Port
		mc.DBName = d.Name
		mc.ParseTime = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported database client %q", d.Client)
	}
}

func (d Database) dialector() (gorm.Dialector, error) {
	dsn, err := d.DSN()
	if err != nil {
		return nil, err
	}
	if d.Client == "mysql" {
		return mysqldriver.Open(dsn), nil
	}
	return postgres.Open(dsn), nil
}

// InitDB opens the database, tunes the pool and migrates every model.
func InitDB(cfg Database, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.LogEnable {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      level,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifeTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserGoal{},
		&models.DailyLog{},
		&models.MealEntry{},
		&models.WeightLog{},
		&models.WaterLog{},
		&models.MealSchedule{},
		&models.RecipeRating{},
		&models.ShoppingList{},
		&models.ShoppingListItem{},
		&models.RecipeSnapshot{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
