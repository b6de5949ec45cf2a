package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/tool"
)

var toolsOpenAI bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the agent tool catalog",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsOpenAI, "openai", false, "Dump the catalog as OpenAI function-calling descriptors")
}

func runTools(cmd *cobra.Command, args []string) error {
	catalog := tool.Default()

	if toolsOpenAI {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog.AllOpenAIFunctions())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tCOMMAND\tREQUIRED\tDESCRIPTION")
	for _, schema := range catalog.All() {
		var required []string
		for name, param := range schema.Parameters {
			if param.Required {
				required = append(required, name)
			}
		}
		sort.Strings(required)
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", schema.ID, schema.CommandID, required, schema.Description)
	}
	return w.Flush()
}
