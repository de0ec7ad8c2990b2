package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/handoff/internal/app"
	"go.trai.ch/handoff/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [manifest]",
		Short: "Analyze every procedure and encode the stored artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			format, _ := cmd.Flags().GetString("format")
			trace, _ := cmd.Flags().GetBool("trace")
			onlyRaw, _ := cmd.Flags().GetStringSlice("only")

			only := make([]domain.DefinitionID, 0, len(onlyRaw))
			for _, raw := range onlyRaw {
				id, err := domain.ParseDefinitionID(raw)
				if err != nil {
					return err
				}
				only = append(only, id)
			}

			var manifest string
			if len(args) == 1 {
				manifest = args[0]
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				Manifest: manifest,
				Workers:  workers,
				Format:   format,
				Only:     only,
				Trace:    trace,
			})
		},
	}
	cmd.Flags().IntP("workers", "w", 0, "Number of workers (default: HANDOFF_WORKERS or one per CPU)")
	cmd.Flags().StringP("format", "f", "text", "Report format: text or json")
	cmd.Flags().StringSlice("only", nil, "Encode only these definitions (e.g. 1,DefId(0:4))")
	cmd.Flags().Bool("trace", false, "Log the duration of every phase and worker")
	return cmd
}
