package cmd

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <image>",
	Short: "Estimate how well an image is protected against recognition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := readImage(args[0])
		if err != nil {
			return err
		}

		service := loadService()
		defer service.Close()

		return printJSON(cmd.OutOrStdout(), service.CheckProtection(img))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <original> <cloaked>",
	Short: "Compare face encodings between an original and a cloaked image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		original, err := readImage(args[0])
		if err != nil {
			return err
		}
		cloaked, err := readImage(args[1])
		if err != nil {
			return err
		}

		service := loadService()
		defer service.Close()

		return printJSON(cmd.OutOrStdout(), service.CompareImages(original, cloaked))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(compareCmd)
}
