package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridflow/bmra/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [type]",
	Args:  cobra.MaximumNArgs(1),
	Short: "List message subtypes and their fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		types := schema.MessageTypes()
		if len(args) == 1 {
			t, ok := schema.ParseMessageType(strings.ToUpper(args[0]))
			if !ok {
				return fmt.Errorf("unknown message type %q", args[0])
			}
			types = []schema.MessageType{t}
		}
		return printSchema(types)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func printSchema(types []schema.MessageType) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	for _, t := range types {
		for _, subtype := range schema.Subtypes(t) {
			fields, err := schema.AcceptedFields(t, subtype)
			if err != nil {
				return err
			}
			fmt.Printf("%s.%s\t%s\n", t, subtype, strings.Join(fields, ","))
		}
	}
	return nil
}
