package config

type Config struct {
	App  AppConfig  `env-prefix:"APP_"`
	HTTP HTTPConfig `env-prefix:"HTTP_"`
	DB   DBConfig   `env-prefix:"DB_"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"PRETTY" env-default:"false"`
}

type HTTPConfig struct {
	Addr string `env:"ADDR" env-default:":8080"`
}

type DBConfig struct {
	Path string `env:"PATH" env-default:"notes.db"`
}
