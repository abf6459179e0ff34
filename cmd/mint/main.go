// Command mint is an operator tool: it credits external asset balances and
// signs bearer tokens for local testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	mw "p2p-lending-ledger/internal/adapter/middleware"
	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/config"
	"p2p-lending-ledger/internal/infrastructure/db"
	"p2p-lending-ledger/internal/infrastructure/logging"
)

func main() {
	holder := flag.String("holder", "", "32-char hex identity to credit or sign for")
	amount := flag.Uint64("amount", 0, "units to mint")
	token := flag.Bool("token", false, "print a bearer token for -holder instead of minting")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if err := run(*holder, *amount, *token, *ttl); err != nil {
		slog.Error("mint failed", "error", err)
		os.Exit(1)
	}
}

func run(holder string, amount uint64, token bool, ttl time.Duration) error {
	cfg := config.Load()
	closer, err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: "text"})
	if err != nil {
		return err
	}
	defer closer.Close()

	if holder == "" {
		return fmt.Errorf("-holder is required")
	}
	if token {
		tok, err := mw.NewToken(mw.AuthConfig{Secret: []byte(cfg.JWTSecret), Issuer: cfg.JWTIssuer}, holder, ttl)
		if err != nil {
			return err
		}
		fmt.Println(tok)
		return nil
	}
	if amount == 0 {
		return fmt.Errorf("-amount must be greater than zero")
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	assets := mysql.NewAssetLedger(gdb)
	if err := assets.Mint(ctx, holder, amount); err != nil {
		return err
	}
	bal, err := assets.BalanceOf(ctx, holder)
	if err != nil {
		return err
	}
	slog.Info("minted", "holder", holder, "amount", amount, "balance", bal)
	return nil
}
