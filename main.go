// Package main is the entry point for the codequal CLI.
package main

import (
	"github.com/huangsam/codequal/cmd"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
