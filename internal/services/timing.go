package services

import (
	"time"

	"github.com/sirupsen/logrus"
)

func TrackTime(logger logrus.FieldLogger, funcName string, start time.Time) {
	elapsed := time.Since(start)
	logger.Debugf("%s took %d ms", funcName, elapsed.Milliseconds())
}
