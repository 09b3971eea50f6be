package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wlvirt/virtual-input/virtual_pointer"
)

var pointerCmd = &cobra.Command{
	Use:   "pointer",
	Short: "Control the virtual pointer",
}

var pointerMoveCmd = &cobra.Command{
	Use:   "move <dx> <dy>",
	Short: "Move the pointer relatively",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dx, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fail(err)
		}
		dy, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fail(err)
		}
		return withPointer(func(p *virtual_pointer.VirtualPointer) error {
			if err := p.MoveRelative(dx, dy); err != nil {
				return err
			}
			ok("moved pointer by (%.1f, %.1f)", dx, dy)
			return nil
		})
	},
}

var pointerClickCmd = &cobra.Command{
	Use:   "click [left|right|middle]",
	Short: "Click a mouse button (default: left)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		button := "left"
		if len(args) == 1 {
			button = args[0]
		}
		return withPointer(func(p *virtual_pointer.VirtualPointer) error {
			var err error
			switch button {
			case "left":
				err = p.LeftClick()
			case "right":
				err = p.RightClick()
			case "middle":
				err = p.MiddleClick()
			default:
				return fail(errUnknownButton(button))
			}
			if err != nil {
				return err
			}
			ok("clicked %s button", button)
			return nil
		})
	},
}

var pointerScrollCmd = &cobra.Command{
	Use:   "scroll <amount> [horizontal]",
	Short: "Scroll vertically (default) or horizontally",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fail(err)
		}
		horizontal := len(args) == 2 && args[1] == "horizontal"
		return withPointer(func(p *virtual_pointer.VirtualPointer) error {
			if horizontal {
				if err := p.ScrollHorizontal(amount); err != nil {
					return err
				}
			} else {
				if err := p.ScrollVertical(amount); err != nil {
					return err
				}
			}
			ok("scrolled %.1f", amount)
			return nil
		})
	},
}

func init() {
	pointerCmd.AddCommand(pointerMoveCmd, pointerClickCmd, pointerScrollCmd)
}

func withPointer(fn func(*virtual_pointer.VirtualPointer) error) error {
	mgr, err := virtual_pointer.NewVirtualPointerManager(socketPath)
	if err != nil {
		return fail(err)
	}
	defer mgr.Close()

	p, err := mgr.CreatePointer()
	if err != nil {
		return fail(err)
	}
	defer p.Close()

	return fn(p)
}

type errUnknownButton string

func (e errUnknownButton) Error() string { return "unknown button: " + string(e) }
