// Program calc-server serves the calc method set as line-delimited JSON-RPC
// over TCP.
//
// Try it with netcat:
//
//	$ echo '{"jsonrpc":"2.0","method":"add","params":[1,2,3,4],"id":1}' | nc 127.0.0.1 7878
//	{"jsonrpc":"2.0","id":1,"result":10}
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mnehpets/streamrpc/calc"
	"github.com/mnehpets/streamrpc/jsonrpc"
	"github.com/mnehpets/streamrpc/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (optional)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(cfg.LogLevel)

	reg := jsonrpc.NewRegistry()
	calc.Register(reg)

	srv := server.New(cfg.Addr, reg)
	srv.SetLogger(logger)
	srv.SetMaxLineBytes(cfg.MaxLineBytes)
	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start failed")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutting down")
	srv.Stop()
}
