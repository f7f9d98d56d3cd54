// Command datastorectl inspects and seeds the document store the datastore
// service uses, with the same configuration.
package main

import (
	"os"

	"github.com/gogotex/datastore/internal/document/service"
	"github.com/gogotex/datastore/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := newRootCmd(service.Open).Execute(); err != nil {
		os.Exit(1)
	}
}
