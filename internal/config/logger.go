package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// InitLogger configures the process-wide logrus logger.
func InitLogger(cfg *Config) {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
