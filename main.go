// main is the entry point for the shipboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/shipboard/cmd"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/internal/iocache"
)

func main() {
	if err := contract.LoadDotEnv(); err != nil {
		contract.LogWarn("Cannot load .env file", err)
	}

	cmd.SetStoreManager(iocache.Manager)
	defer iocache.CloseStores()

	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
