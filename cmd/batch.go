package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"text/tabwriter"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric/types"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	batchOutput  string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Cloak every image in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := listImages(args[0])
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No images found.")
			return nil
		}

		service := loadService()
		defer service.Close()

		bar := progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Cloaking"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)
		results := runBatch(cmd.Context(), service, paths, batchOutput, batchWorkers, func() { bar.Add(1) })
		bar.Finish()
		fmt.Fprintln(os.Stderr)

		failed := printSummary(cmd.OutOrStdout(), results)
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d image(s) failed", failed, len(paths))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output directory (default: next to each input)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", runtime.NumCPU(), "number of images cloaked in parallel")
	rootCmd.AddCommand(batchCmd)
}

type batchResult struct {
	Input    string
	Output   string
	Faces    int
	Fallback bool
	Err      error
}

// runBatch cloaks paths with a fixed pool of workers. Results keep the order
// of paths; entries skipped after cancellation carry ctx.Err().
func runBatch(ctx context.Context, service types.ProtectionServiceType, paths []string, outDir string, workers int, progress func()) []batchResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]batchResult, len(paths))
	tasks := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				results[i] = cloakFile(service, paths[i], outDir)
				if progress != nil {
					progress()
				}
			}
		}()
	}

	next := 0
feed:
	for ; next < len(paths); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case tasks <- next:
		}
	}
	close(tasks)
	wg.Wait()

	for i := next; i < len(paths); i++ {
		results[i] = batchResult{Input: paths[i], Err: ctx.Err()}
	}
	return results
}

func cloakFile(service types.ProtectionServiceType, input, outDir string) batchResult {
	result := batchResult{Input: input, Output: cloakedPath(input, outDir)}
	img, err := readImage(input)
	if err != nil {
		result.Err = err
		return result
	}
	cloaked := service.CloakImage(img)
	result.Faces = cloaked.FacesDetected
	result.Fallback = cloaked.FallbackApplied
	result.Err = writePNG(result.Output, cloaked.Image)
	return result
}

// printSummary writes one row per image and returns how many failed.
func printSummary(out io.Writer, results []batchResult) int {
	failed := 0
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INPUT\tFACES\tMODE\tOUTPUT")
	fmt.Fprintln(w, "-----\t-----\t----\t------")
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(w, "%s\t-\terror\t%v\n", r.Input, r.Err)
		case r.Fallback:
			fmt.Fprintf(w, "%s\t0\tglobal\t%s\n", r.Input, r.Output)
		default:
			fmt.Fprintf(w, "%s\t%d\tfaces\t%s\n", r.Input, r.Faces, r.Output)
		}
	}
	w.Flush()
	return failed
}
