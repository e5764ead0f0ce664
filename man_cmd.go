package main

import (
	"fmt"
	"os"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var manCmd = &cobra.Command{
	Use:                   "man",
	Short:                 "Generates manpages",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Hidden:                true,
	Args:                  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		page, err := manPage()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(os.Stdout, page)
		return err
	},
}

func manPage() (string, error) {
	page, err := mcobra.NewManPage(1, rootCmd)
	if err != nil {
		return "", err
	}
	page = page.WithSection("Environment", "BIBO_VOICE, BIBO_SPEED and BIBO_ENGINE set flag defaults.\n"+
		"BIBO_PYTHON, BIBO_THREADS, BIBO_CACHE_ENABLED and BIBO_CACHE_MAX_SIZE override the config file.\n"+
		"BIBO_MIRROR replaces the download host. BIBO_SHERPA_PATH points at a sherpa-onnx-offline-tts binary.\n"+
		"BIBO_DATA_HOME moves models, the engine and the cache.")
	return page.Build(roff.NewDocument()), nil
}
