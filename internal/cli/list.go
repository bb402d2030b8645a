package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phanxgames/surprise/content"
)

func newListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the objects of the scene table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tbl, err := load(*configPath)
			if err != nil {
				return err
			}
			return list(cmd.OutOrStdout(), tbl)
		},
	}
}

// list writes one row per object in the order the stage numbers them.
func list(w io.Writer, tbl *content.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tPOSITION\tEXTRAS\tMESSAGE")
	for i, o := range tbl.Objects() {
		var extras []string
		if o.Payload.HasImage() {
			extras = append(extras, "image")
		}
		if o.Payload.HasAudio() {
			extras = append(extras, "audio")
		}
		if o.Payload.HasQuiz() {
			extras = append(extras, "quiz")
		}
		if len(extras) == 0 {
			extras = append(extras, "-")
		}
		fmt.Fprintf(tw, "%d\t%s\t(%.2f, %.2f, %.2f)\t%s\t%s\n",
			i, o.Kind, o.Position.X, o.Position.Y, o.Position.Z,
			strings.Join(extras, ","), firstLine(o.Payload.Message, 40))
	}
	return tw.Flush()
}

func firstLine(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}
