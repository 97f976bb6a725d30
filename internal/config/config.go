package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ProductosAPIURL string
	PedidosAPIURL   string
	UsuariosAPIURL  string
	RedisAddr       string
	RedisPassword   string
	AppPort         string
	AppEnv          string
	JWTSecret       string
	AllowedOrigins  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ProductosAPIURL: os.Getenv("PRODUCTOS_API_URL"),
		PedidosAPIURL:   os.Getenv("PEDIDOS_API_URL"),
		UsuariosAPIURL:  os.Getenv("USUARIOS_API_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		AppPort:         os.Getenv("APP_PORT"),
		AppEnv:          os.Getenv("APP_ENV"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AllowedOrigins:  os.Getenv("ALLOWED_ORIGINS"),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	if cfg.ProductosAPIURL == "" || cfg.PedidosAPIURL == "" || cfg.UsuariosAPIURL == "" {
		log.Fatal("Environment variables not loaded properly: upstream API URLs are required")
	}

	return cfg
}
