package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	cli := &commandLine{conf: conf, logger: logger}
	err := cli.rootCommand().ExecuteContext(context.Background())
	if cerr := cli.close(); cerr != nil {
		logger.Error("closing database", cerr)
	}
	if err != nil {
		logger.Error("error: "+err.Error(), err)
		os.Exit(1)
	}
}
