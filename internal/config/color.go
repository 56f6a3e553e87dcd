package config

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// RGB is a 24-bit color written as [r, g, b] in config files.
type RGB [3]uint8

// ColorToForeground returns the truecolor escape sequence that sets c as
// the terminal foreground color.
func ColorToForeground(c RGB) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c[0], c[1], c[2])
}

// ColorToBackground returns the truecolor escape sequence that sets c as
// the terminal background color.
func ColorToBackground(c RGB) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c[0], c[1], c[2])
}

// Fg is shorthand for ColorToForeground(c).
func (c RGB) Fg() string { return ColorToForeground(c) }

// Bg is shorthand for ColorToBackground(c).
func (c RGB) Bg() string { return ColorToBackground(c) }

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Printer returns a fatih/color printer for c, honoring the usual
// NO_COLOR and tty detection.
func (c RGB) Printer(bg bool) *color.Color {
	if bg {
		return color.BgRGB(int(c[0]), int(c[1]), int(c[2]))
	}
	return color.RGB(int(c[0]), int(c[1]), int(c[2]))
}

// MarshalYAML writes colors as a flow sequence so config files stay on
// one line per color.
func (c RGB) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range c {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(int(v)),
		})
	}
	return node, nil
}
