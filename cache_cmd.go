package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cacheClear bool

var cacheCmd = &cobra.Command{
	Use:     "cache",
	Short:   "Show or clear the synthesis cache",
	Long:    paragraph(fmt.Sprintf("\nSynthesized audio is %s so repeated text plays without running the engine again.", keyword("cached on disk"))),
	Example: paragraph("bibo cache\nbibo cache --clear"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		disk, err := openCache(opts.layout, opts.cacheMaxMB)
		if err != nil {
			return err
		}
		defer disk.Close() //nolint:errcheck

		w := cmd.OutOrStdout()
		if cacheClear {
			if err := disk.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s Cleared %s\n", success.Render("✅"), disk.Dir())
			return nil
		}

		size, err := disk.Size()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", heading.Render("Cache:"), disk.Dir())
		fmt.Fprintf(w, "  %s of %s\n", humanize.Bytes(uint64(size)), humanize.Bytes(uint64(opts.cacheMaxMB)<<20)) //nolint:gosec
		return nil
	},
}

func init() {
	cacheCmd.Flags().BoolVar(&cacheClear, "clear", false, "remove every cached clip")
}
