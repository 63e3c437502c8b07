package config

import (
	"agent-portal-service/src/internal/gateway/backend"
	"agent-portal-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewBackendClient(viper *viper.Viper, log log.Log) *backend.Client {
	return backend.NewClient(viper, log)
}
