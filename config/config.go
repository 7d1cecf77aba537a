package config

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/spf13/viper"

	"vidshare/constant"
)

type Config struct {
	App        App        `yaml:"app"`
	Server     Server     `yaml:"server"`
	Storage    Storage    `yaml:"storage"`
	Processing Processing `yaml:"processing"`
	Sweep      Sweep      `yaml:"sweep"`
	DB         *sql.DB    `yaml:"db"`
}

type App struct {
	Environment string `yaml:"environment"`
}

type Server struct {
	HttpPort  string `yaml:"http_port"`
	PublicDir string `yaml:"public_dir"`
}

type Storage struct {
	DataDir string `yaml:"data_dir"`
}

type Processing struct {
	Strategy constant.Strategy `yaml:"strategy"`
}

type Sweep struct {
	Schedule string `yaml:"schedule"`
	Timezone string `yaml:"timezone"`
}

func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("app.environment", constant.EnvironmentDevelop.String())
	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.public_dir", "public")
	viper.SetDefault("storage.data_dir", "data")
	viper.SetDefault("processing.strategy", constant.StrategyTranscode.String())
	viper.SetDefault("sweep.schedule", "0 */6 * * *")
	viper.SetDefault("sweep.timezone", "UTC")

	// The deployment surface from the environment: listen port and database
	// connection string.
	_ = viper.BindEnv("server.port", "PORT")
	_ = viper.BindEnv("postgresql_host", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	db, err := sql.Open("postgres", viper.GetString("postgresql_host"))
	if err != nil {
		return nil, err
	}

	return &Config{
		App: App{
			Environment: viper.GetString("app.environment"),
		},
		Server: Server{
			HttpPort:  viper.GetString("server.port"),
			PublicDir: viper.GetString("server.public_dir"),
		},
		Storage: Storage{
			DataDir: viper.GetString("storage.data_dir"),
		},
		Processing: Processing{
			Strategy: constant.Strategy(viper.GetString("processing.strategy")),
		},
		Sweep: Sweep{
			Schedule: viper.GetString("sweep.schedule"),
			Timezone: viper.GetString("sweep.timezone"),
		},
		DB: db,
	}, nil
}
