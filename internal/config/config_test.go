package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PRODUCTOS_API_URL", "http://localhost:8081/api")
	t.Setenv("PEDIDOS_API_URL", "http://localhost:8082/api")
	t.Setenv("USUARIOS_API_URL", "http://localhost:8083/api")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "development")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8081/api", cfg.ProductosAPIURL)
	assert.Equal(t, "http://localhost:8082/api", cfg.PedidosAPIURL)
	assert.Equal(t, "http://localhost:8083/api", cfg.UsuariosAPIURL)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "development", cfg.AppEnv)
}

func TestLoadConfigDefaultPort(t *testing.T) {
	t.Setenv("PRODUCTOS_API_URL", "http://localhost:8081/api")
	t.Setenv("PEDIDOS_API_URL", "http://localhost:8082/api")
	t.Setenv("USUARIOS_API_URL", "http://localhost:8083/api")
	t.Setenv("APP_PORT", "")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
}
