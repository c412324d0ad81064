package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio, el entrenador y el cliente de verificación.
type Config struct {
	HTTPPort           string   `env:"HTTP_PORT" envDefault:"5000"`
	SecretKey          string   `env:"SECRET_KEY" envDefault:"default_secret_key"`
	ModelPath          string   `env:"MODEL_PATH" envDefault:"model.json"`
	DatasetPath        string   `env:"DATASET_PATH" envDefault:"dataset.csv"`
	TrainEstimators    int      `env:"TRAIN_ESTIMATORS" envDefault:"100"`
	TrainSeed          int64    `env:"TRAIN_SEED" envDefault:"42"`
	SessionTTLMinutes  int      `env:"SESSION_TTL_MINUTES" envDefault:"1440"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	DatabaseURL        string   `env:"DATABASE_URL"`
	RedisAddr          string   `env:"REDIS_ADDR"`
	RedisPassword      string   `env:"REDIS_PASSWORD"`
	RedisDB            int      `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
