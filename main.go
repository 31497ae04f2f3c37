package main

import (
	"os"

	"github.com/lospro7/snapshot-s3-util/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
