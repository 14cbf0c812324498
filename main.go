package main

import (
	"log"
	"os"

	"inkpost/service"
)

const cliVersion = "1.0.0"

func main() {
	if err := service.NewApp(cliVersion).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
