package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cloakOutput string

var cloakCmd = &cobra.Command{
	Use:   "cloak <image>",
	Short: "Write a cloaked PNG copy of an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := readImage(args[0])
		if err != nil {
			return err
		}

		service := loadService()
		defer service.Close()

		result := service.CloakImage(img)
		output := cloakOutput
		if output == "" {
			output = cloakedPath(args[0], "")
		}
		if err := writePNG(output, result.Image); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}

		if result.FallbackApplied {
			fmt.Fprintf(cmd.OutOrStdout(), "No faces detected; applied light global noise -> %s\n", output)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cloaked %d face(s) -> %s\n", result.FacesDetected, output)
		return nil
	},
}

func init() {
	cloakCmd.Flags().StringVarP(&cloakOutput, "output", "o", "", "output path (default: <name>_cloaked.png next to the input)")
	rootCmd.AddCommand(cloakCmd)
}
