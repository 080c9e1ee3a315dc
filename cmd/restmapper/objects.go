package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"restmapper/internal/descriptor"
)

var objectsKind string

var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "List catalog objects, dependencies first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, _, err := loadRegistry()
		if err != nil {
			return err
		}

		var filter *descriptor.ObjectKind

		if objectsKind != "" {
			kind, err := descriptor.ParseObjectKind(objectsKind)
			if err != nil {
				return err
			}

			filter = &kind
		}

		order, err := reg.DependencyOrder()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		for _, name := range order {
			obj, err := reg.Resolve(name)
			if err != nil {
				return err
			}

			if filter != nil && obj.Kind() != *filter {
				continue
			}

			fmt.Fprintf(out, "%-60s %-9s %3d fields\n", obj.Name(), obj.Kind(), obj.Len())
		}

		return nil
	},
}

func init() {
	objectsCmd.Flags().StringVar(&objectsKind, "kind", "", "only list objects of `kind` (top_level, nested)")
	rootCmd.AddCommand(objectsCmd)
}
