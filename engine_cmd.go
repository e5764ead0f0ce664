package main

import (
	"fmt"
	"os"

	"github.com/bibo-tts/bibo/internal/catalog"
	"github.com/spf13/cobra"
)

var engineCmd = &cobra.Command{
	Use:     "engine",
	Short:   "Install the sherpa-onnx engine",
	Long:    paragraph(fmt.Sprintf("\n%s the native sherpa-onnx engine into the data directory. bibo does this on first use; run it ahead of time to work offline later.", keyword("Download"))),
	Example: paragraph("bibo engine\nBIBO_MIRROR=https://mirror.example.com bibo engine"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		opts.backend = catalog.BackendSherpa

		a, err := newApp(opts, os.Stdout)
		if err != nil {
			return err
		}
		if err := a.inst.InstallEngine(cmd.Context()); err != nil {
			return err
		}
		a.printf("%s %s\n", success.Render("✅"), a.cat.Layout().EngineBinary())
		return nil
	},
}
