package logger

import (
	"os"

	"github.com/warp-contracts/minter/src/utils/config"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.New()
}

func Init(config *config.Config) (err error) {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return
	}
	logger.SetLevel(level)
	logger.SetOutput(os.Stdout)

	var formatter logrus.Formatter
	if config.IsDevelopment {
		formatter = &logrus.TextFormatter{
			FullTimestamp: true,
		}
	} else {
		formatter = &logrus.JSONFormatter{}
	}
	logger.SetFormatter(formatter)

	return nil
}

func L() *logrus.Logger {
	return logger
}

func NewSublogger(tag string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{"module": "minter." + tag})
}
