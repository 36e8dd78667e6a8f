// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/quickplay-cli/quickplay/key"
	"github.com/quickplay-cli/quickplay/style"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

type iconDef struct {
	color   lipgloss.Color
	emoji   string
	nerd    string
	plain   string
	squares string
}

func (d *iconDef) Get() string {
	var symbol string
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		symbol = d.nerd
	case plain:
		symbol = d.plain
	case squares:
		symbol = d.squares
	default:
		return ""
	}
	return style.Fg(d.color)(symbol)
}

// Get returns the symbol for i, or an empty string for an unknown variant.
func Get(i Icon) string {
	return icons[i].Get()
}
