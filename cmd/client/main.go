package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/atinyakov/accountkeeper/internal/accounts"
	"github.com/atinyakov/accountkeeper/internal/client"
	"github.com/atinyakov/accountkeeper/internal/config"
	"github.com/atinyakov/accountkeeper/internal/logger"
	"github.com/atinyakov/accountkeeper/internal/storage"
)

var (
	version   string
	buildDate string
)

// main parses flags, opens the configured storage and runs the shell.
func main() {
	var showVer bool
	flag.BoolVar(&showVer, "version", false, "show build version and date")

	options := config.Parse()

	if showVer {
		fmt.Printf("Account Keeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	l := logger.New()
	if err := l.Init(options.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Log.Sync() }()

	ctx := context.Background()
	kv, closeKV, err := storage.Open(ctx, options, l.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = closeKV() }()

	store, err := accounts.NewStoreFromConfig(ctx, kv, options, l.Log)
	if err != nil {
		log.Fatal(err)
	}

	defer store.LogChanges()()

	client.Run(ctx, store, os.Stdin, os.Stdout)
}
