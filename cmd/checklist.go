package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docreader/internal/checklist"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Inspect and update document checklists",
}

var checklistListCmd = &cobra.Command{
	Use:   "list <doc-id>",
	Short: "Show a document's checklist and progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withChecklist(cmd.Context(), args[0], func(ctx context.Context, m *checklist.Manager) error {
			printChecklist(m)
			return nil
		})
	},
}

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle <doc-id> <item-id>",
	Short: "Toggle one checklist item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withChecklist(cmd.Context(), args[0], func(ctx context.Context, m *checklist.Manager) error {
			checked, err := m.Toggle(ctx, args[1])
			if err != nil {
				return err
			}
			state := "unchecked"
			if checked {
				state = "checked"
			}
			fmt.Printf("%s is now %s\n", args[1], state)
			return nil
		})
	},
}

var checklistSelectAllCmd = &cobra.Command{
	Use:   "select-all <doc-id>",
	Short: "Check every item of a document's checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withChecklist(cmd.Context(), args[0], func(ctx context.Context, m *checklist.Manager) error {
			if err := m.SelectAll(ctx); err != nil {
				return err
			}
			printChecklist(m)
			return nil
		})
	},
}

var checklistDeselectAllCmd = &cobra.Command{
	Use:   "deselect-all <doc-id>",
	Short: "Uncheck every item of a document's checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withChecklist(cmd.Context(), args[0], func(ctx context.Context, m *checklist.Manager) error {
			if err := m.DeselectAll(ctx); err != nil {
				return err
			}
			printChecklist(m)
			return nil
		})
	},
}

func init() {
	checklistCmd.AddCommand(checklistListCmd, checklistToggleCmd, checklistSelectAllCmd, checklistDeselectAllCmd)
	rootCmd.AddCommand(checklistCmd)
}

// withChecklist loads docID's checklist from persisted state and runs fn.
func withChecklist(ctx context.Context, docID string, fn func(context.Context, *checklist.Manager) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadDocuments(cfg)
	if err != nil {
		return err
	}
	doc, err := store.Get(docID)
	if err != nil {
		return err
	}
	if !doc.Checklist {
		return fmt.Errorf("%s is not a checklist (set checklist: true in its front matter)", docID)
	}

	state, closeState, err := openState(cfg, false)
	if err != nil {
		return err
	}
	defer closeState()

	m := checklist.NewManager(state, slog.Default())
	if err := m.Load(ctx, doc.Content); err != nil {
		return err
	}
	return fn(ctx, m)
}

func printChecklist(m *checklist.Manager) {
	done, total := m.Progress()
	fmt.Printf("%d of %d done\n", done, total)
	for _, it := range m.Items() {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		indent := strings.Repeat("  ", it.Level)
		fmt.Printf("%s%s %s  (%s)\n", indent, box, it.Text, it.ID)
	}
}
