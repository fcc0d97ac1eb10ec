// Command useradd registers an account from the terminal using the same
// configuration and storage as the server.
package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/cli"
	"github.com/dmitrijs2005/gophauth/internal/server"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, accounts, err := server.Bootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	_, err = cli.RegisterUser(ctx, accounts, bufio.NewReader(os.Stdin), os.Stdout)
	_ = db.Close()
	if err != nil {
		log.Fatalf("%v", err)
	}
}
