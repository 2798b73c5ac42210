package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// errNoOutFile is returned when export is asked to write to an empty path.
var errNoOutFile = errors.New("--out must not be empty")

func newValidateCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Audit the described structure and print the violation report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(args)
			if err != nil {
				return err
			}
			return a.Validate(cmd.Context())
		},
	}
}

func newListCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "Print the layers, metamodels and references of the structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(args)
			if err != nil {
				return err
			}
			return a.List(cmd.Context())
		},
	}
}

func newOrderCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "order [paths...]",
		Short: "Print an initialization order that honours MANDATORY references",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(args)
			if err != nil {
				return err
			}
			return a.Order(cmd.Context())
		},
	}
}

func newExportCommand(s *settings) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Write the structure as a YAML description",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("out") && out == "" {
				return usageError(errNoOutFile)
			}
			a, err := s.newApp(args)
			if err != nil {
				return err
			}
			return a.Export(cmd.Context(), out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "File to write instead of standard output.")
	return cmd
}

func newWatchCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Validate again whenever a description changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.newApp(args)
			if err != nil {
				return err
			}
			return a.Watch(cmd.Context())
		},
	}
}
