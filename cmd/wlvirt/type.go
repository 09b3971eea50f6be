package main

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/wlvirt/virtual-input/virtual_keyboard"
)

var typeCmd = &cobra.Command{
	Use:   "type <text>",
	Short: "Type the given text as key events",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		return withKeyboard(func(kb *virtual_keyboard.VirtualKeyboard) error {
			if err := virtual_keyboard.TypeString(kb, text); err != nil {
				return err
			}
			ok("typed %d characters", len(text))
			return nil
		})
	},
}

var clipboardCmd = &cobra.Command{
	Use:   "type-clipboard",
	Short: "Type the current system clipboard contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := clipboard.ReadAll()
		if err != nil {
			return fail(err)
		}
		return withKeyboard(func(kb *virtual_keyboard.VirtualKeyboard) error {
			if err := virtual_keyboard.TypeString(kb, text); err != nil {
				return err
			}
			ok("typed %d characters from clipboard", len(text))
			return nil
		})
	},
}

func withKeyboard(fn func(*virtual_keyboard.VirtualKeyboard) error) error {
	mgr, err := virtual_keyboard.NewVirtualKeyboardManager(socketPath)
	if err != nil {
		return fail(err)
	}
	defer mgr.Close()

	kb, err := mgr.CreateVirtualKeyboard()
	if err != nil {
		return fail(err)
	}
	defer kb.Destroy()

	return fn(kb)
}
