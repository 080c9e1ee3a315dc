package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"restmapper/internal/record"
	"restmapper/internal/schema"
)

var (
	convertFile     string
	convertCustom   []string
	convertPayload  bool
	convertNull     []string
	convertValidate bool
)

var convertCmd = &cobra.Command{
	Use:   "convert OBJECT",
	Short: "Convert raw API JSON into records or update payloads",
	Long: `Reads a JSON object, or an array of objects, from --file or stdin and
writes one converted record per line. With --payload the records are
written as update payloads holding writable fields only; fields listed
with --null are sent as explicit nulls when empty.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := deriveSchema(cmd.Context(), args[0], convertCustom)
		if err != nil {
			return err
		}

		conv, err := newConverter()
		if err != nil {
			return err
		}

		raw, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}

		if convertValidate {
			if err := validateInput(cmd, s, raw); err != nil {
				return err
			}
		}

		var (
			recs   []*record.Record
			failed error
		)

		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
			recs, failed = conv.FromJSONArray(raw, s)
			if failed != nil {
				log.Warnf("%s: some records failed: %v", s.Object, failed)
			}
		} else {
			rec, err := conv.FromJSON(raw, s)
			if err != nil {
				return err
			}

			recs = []*record.Record{rec}
		}

		out := cmd.OutOrStdout()

		for _, rec := range recs {
			if rec == nil {
				continue
			}

			var buf []byte
			if convertPayload {
				buf, err = conv.ToJSON(rec, s, convertNull...)
			} else {
				buf, err = rec.MarshalJSON()
			}

			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(out, string(buf)); err != nil {
				return err
			}
		}

		return failed
	},
}

func readInput(stdin io.Reader) ([]byte, error) {
	if convertFile == "" || convertFile == "-" {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(convertFile)
}

func validateInput(cmd *cobra.Command, s *schema.Schema, raw []byte) error {
	v, err := s.Validator()
	if err != nil {
		return err
	}

	err = v.ValidateBytes(cmd.Context(), raw)

	var invalid *schema.ValidationError
	if errors.As(err, &invalid) {
		for _, p := range invalid.Problems {
			log.Warnf("%s: %s", invalid.Object, p)
		}

		return nil
	}

	return err
}

func init() {
	convertCmd.Flags().StringVarP(&convertFile, "file", "f", "", "read input from `file` (default: stdin)")
	convertCmd.Flags().StringSliceVar(&convertCustom, "custom", nil, "append custom field `name:type` (repeatable)")
	convertCmd.Flags().BoolVar(&convertPayload, "payload", false, "write update payloads instead of records")
	convertCmd.Flags().StringSliceVar(&convertNull, "null", nil, "fields to send as explicit null (dotted for nested)")
	convertCmd.Flags().BoolVar(&convertValidate, "validate", false, "report JSON Schema violations before converting")
	rootCmd.AddCommand(convertCmd)
}
