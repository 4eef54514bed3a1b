package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/library-console/pkg/circuit_breaker"
	"github.com/Astemirdum/library-console/pkg/kafka"
	"github.com/Astemirdum/library-console/pkg/logger"

	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"CONSOLE_HTTP_HOST" default:"localhost"`
	Port         string        `yaml:"port" envconfig:"CONSOLE_HTTP_PORT" default:"8090"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"15s"`
	WriteTimeout time.Duration
}

type LibraryAPI struct {
	BaseURL string        `envconfig:"LIBRARY_API_URL" default:"http://localhost:5000/api"`
	Timeout time.Duration `envconfig:"LIBRARY_API_TIMEOUT" default:"1m"`
}

type Config struct {
	Server     HTTPServer `yaml:"server"`
	LibraryAPI LibraryAPI
	Breaker    circuit_breaker.Config
	Kafka      kafka.Config
	Log        logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		config, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

// Load applies options and then the environment, without caching.
func Load(ops ...Option) (Config, error) {
	var config Config
	for _, op := range ops {
		op(&config)
	}
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
