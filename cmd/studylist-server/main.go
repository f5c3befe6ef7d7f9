package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/studylist/studylist-sync/internal/syncservice"
)

func main() {
	if err := syncservice.Run(); err != nil {
		log.Error().Err(err).Msg("studylist-server exited with error")
		os.Exit(1)
	}
}
