package utils

import (
	"net"
	"os"

	"recipehub/config"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

// NewLogger builds the process logger. ELK and Logstash hooks are attached
// when enabled; a hook that cannot be created is reported and skipped.
func NewLogger(cfg config.Log) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stdout

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if cfg.ElkEnable {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{cfg.ElkURL},
		})
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client")
		} else if hook, err := elogrus.NewAsyncElasticHook(client, "recipehub", level, cfg.ElkIndex); err != nil {
			logger.WithError(err).Warn("elasticsearch hook")
		} else {
			logger.Hooks.Add(hook)
		}
	}

	if cfg.LogstashEnable {
		conn, err := net.Dial("udp", cfg.LogstashURL)
		if err != nil {
			logger.WithError(err).Warn("logstash dial")
		} else {
			logger.Hooks.Add(logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": "recipehub"})))
		}
	}

	return logger
}
