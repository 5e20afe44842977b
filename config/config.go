package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"cpu-scheduler/internal/schedulers"
)

type SchedulerConfig struct {
	Port                  int
	Debug                 bool
	DefaultAlgorithm      schedulers.Algorithm
	RoundRobinTimeQuantum int
}

// Load reads config.yaml from the given directories, falling back to
// defaults when no file exists. SCHEDULER_* environment variables override
// file values, e.g. SCHEDULER_ROUND_ROBIN_TIME_QUANTUM.
func Load(paths ...string) (*SchedulerConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetDefault("port", 9095)
	v.SetDefault("debug", false)
	v.SetDefault("scheduler.default_algorithm", string(schedulers.FirstComeFirstServe))
	v.SetDefault("scheduler.round_robin.time_quantum", 2)

	v.SetEnvPrefix("SCHEDULER")
	v.SetEnvKeyReplacer(strings.NewReplacer("SCHEDULER.", "", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	algorithm, err := schedulers.ParseAlgorithm(v.GetString("scheduler.default_algorithm"))
	if err != nil {
		return nil, fmt.Errorf("scheduler.default_algorithm: %w", err)
	}

	config := &SchedulerConfig{
		Port:                  v.GetInt("port"),
		Debug:                 v.GetBool("debug"),
		DefaultAlgorithm:      algorithm,
		RoundRobinTimeQuantum: v.GetInt("scheduler.round_robin.time_quantum"),
	}
	if config.RoundRobinTimeQuantum <= 0 {
		return nil, fmt.Errorf("scheduler.round_robin.time_quantum: %w: %d", schedulers.ErrInvalidTimeQuantum, config.RoundRobinTimeQuantum)
	}
	return config, nil
}
