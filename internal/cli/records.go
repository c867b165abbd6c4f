package cli

import (
	"errors"
	"sort"
	"strings"
	"time"

	"feedlog-cli/internal/form"
	"feedlog-cli/internal/model"

	"github.com/spf13/cobra"
)

func newRecordsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage feeding records",
	}
	cmd.AddCommand(newRecordsListCmd(app))
	cmd.AddCommand(newRecordsAddCmd(app))
	cmd.AddCommand(newRecordsEditCmd(app))
	cmd.AddCommand(newRecordsDeleteCmd(app))
	return cmd
}

func newRecordsListCmd(app *App) *cobra.Command {
	var animal string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feeding records (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := client.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if animal != "" {
				filtered := recs[:0]
				for _, r := range recs {
					if string(r.Animal) == animal {
						filtered = append(filtered, r)
					}
				}
				recs = filtered
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}

	cmd.Flags().StringVar(&animal, "animal", "", "Filter by animal ("+animalChoices()+")")
	return cmd
}

func newRecordsAddCmd(app *App) *cobra.Command {
	var draft form.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a feeding record",
		Args:  cobra.NoArgs,
		Example: strings.TrimSpace(`
  feedlog records add --date 2024-01-15 --time 08:30 --weight 250 --animal cat
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := payloadFromDraft(draft)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := client.Create(cmd.Context(), payload)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	addDraftFlags(cmd, &draft)
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func newRecordsEditCmd(app *App) *cobra.Command {
	var draft form.Draft

	cmd := &cobra.Command{
		Use:   "edit <record-id>",
		Short: "Replace a feeding record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := payloadFromDraft(draft)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := client.Update(cmd.Context(), args[0], payload)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	addDraftFlags(cmd, &draft)
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func newRecordsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a feeding record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("refusing to delete without --yes"))
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.Delete(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "deleted": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}

func addDraftFlags(cmd *cobra.Command, draft *form.Draft) {
	cmd.Flags().StringVar(&draft.Date, "date", "", "Feeding date (YYYY-MM-DD, local)")
	cmd.Flags().StringVar(&draft.Time, "time", "", "Feeding time (HH:MM or HH:MM:SS, local)")
	cmd.Flags().StringVar(&draft.Weight, "weight", "", "Food weight in grams")
	cmd.Flags().StringVar(&draft.Animal, "animal", "cat", "Animal ("+animalChoices()+")")
}

// payloadFromDraft runs the same validation the TUI form does, so scripted
// input gets the same messages interactive input would.
func payloadFromDraft(draft form.Draft) (model.RecordPayload, error) {
	if errs := form.Validate(draft, time.Now()); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, msg := range errs {
			msgs = append(msgs, msg)
		}
		sort.Strings(msgs)
		return model.RecordPayload{}, errors.New(strings.Join(msgs, " "))
	}
	return form.Payload(draft, time.Local)
}

func animalChoices() string {
	parts := make([]string, 0, len(model.Animals()))
	for _, a := range model.Animals() {
		parts = append(parts, string(a))
	}
	return strings.Join(parts, "|")
}
