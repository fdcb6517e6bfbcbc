package api

import (
	"context"
	"errors"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xelis-project/xelis-go-sdk/wallet"

	"github.com/MrE-Fog/grindery-delight-api/internal/config"
	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/lifecycle"
)

const depositCheckTermSeconds = 10

// monitorXelisDeposits watches the exchange wallet for incoming transfers
// and confirms matching orders by deposit hash. It drives the same
// transition as the success webhook, for settlements observed directly on
// chain instead of reported by the counterparty.
func monitorXelisDeposits(ctx context.Context, engine *lifecycle.Engine, sig chan os.Signal) {
	ticker := time.NewTicker(depositCheckTermSeconds * time.Second)
	xelisWallet, err := wallet.NewRPC(ctx, os.Getenv(config.EnvDltXelisRPC),
		os.Getenv(config.EnvDltXelisID), os.Getenv(config.EnvDltXelisPassword))
	if err != nil {
		log.Fatal(err)
	}
	for {
		select {
		case <-ticker.C:
			txs, err := xelisWallet.ListTransactions(wallet.ListTransactionsParams{
				AcceptOutgoing: false,
				AcceptIncoming: true,
				AcceptCoinbase: false,
				AcceptBurn:     false,
			})
			if err != nil {
				log.Errorf("error while listing wallet transactions: %s", err.Error())
				continue
			}
			for _, tx := range txs {
				order, err := engine.ConfirmOrderDeposit(ctx, tx.Hash)
				if err != nil {
					if errors.Is(err, lifecycle.ErrOrderNotFound) {
						log.Debugf("no order for deposit %s", tx.Hash)
					} else {
						log.Errorf("error while confirming deposit %s: %s", tx.Hash, err.Error())
					}
					continue
				}
				log.Infof("order %s deposit confirmed, status: %s", order.OrderID, order.Status)
			}
		case <-sig:
			log.Printf("Stopping XEL deposit checking.")
			return
		}
	}
}
