package main

import (
	"github.com/spf13/cobra"
	"github.com/wlvirt/virtual-input/internal/macro"
	"github.com/wlvirt/virtual-input/virtual_keyboard"
)

var macroFile string

var macroCmd = &cobra.Command{
	Use:   "macro <name>",
	Short: "Replay a named macro from a YAML macro file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := macro.Load(macroFile)
		if err != nil {
			return fail(err)
		}
		set, err := f.Find(args[0])
		if err != nil {
			return fail(err)
		}
		return withKeyboard(func(kb *virtual_keyboard.VirtualKeyboard) error {
			if err := set.PlayOn(kb); err != nil {
				return err
			}
			ok("played macro %q (%d steps)", set.Name, len(set.Steps))
			return nil
		})
	},
}

func init() {
	macroCmd.Flags().StringVar(&macroFile, "file", "macros.yaml", "path to a YAML macro file")
}
