package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	schemaCustom []string
	schemaFormat string
)

var schemaCmd = &cobra.Command{
	Use:   "schema OBJECT",
	Short: "Derive the schema of an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := deriveSchema(cmd.Context(), args[0], schemaCustom)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		switch schemaFormat {
		case "tree":
			return s.Format(out)
		case "jsonschema":
			doc, err := s.JSONSchema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, string(doc))

			return err
		case "dump":
			s.Dump(out)
			return nil
		default:
			return fmt.Errorf("unsupported format %q", schemaFormat)
		}
	},
}

func init() {
	schemaCmd.Flags().StringSliceVar(&schemaCustom, "custom", nil, "append custom field `name:type` (repeatable)")
	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "tree", "output format: tree, jsonschema, dump")
	rootCmd.AddCommand(schemaCmd)
}
