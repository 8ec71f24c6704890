package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := newRootCommand(log).Execute(); err != nil {
		log.WithError(err).Error("命令执行失败")
		os.Exit(1)
	}
}
