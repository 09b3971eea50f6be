package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var socketPath string

var rootCmd = &cobra.Command{
	Use:   "wlvirt",
	Short: "Inject virtual pointer, keyboard, and macro input into a Wayland compositor",
	Long: `wlvirt drives the wlr-virtual-pointer, virtual-keyboard, pointer-constraints,
and keyboard-shortcuts-inhibit protocols from the command line, for scripting
input injection against wlroots-based and other supporting compositors.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Wayland socket name or path (default: $WAYLAND_DISPLAY)")
	rootCmd.AddCommand(pointerCmd, typeCmd, clipboardCmd, macroCmd)
}

func ok(format string, a ...interface{}) {
	color.New(color.FgGreen).Printf(format+"\n", a...)
}

func fail(err error) error {
	return fmt.Errorf("wlvirt: %w", err)
}
