package icon

import "github.com/quickplay-cli/quickplay/color"

type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Play
	Audio
	Video
)

var icons = map[Icon]*iconDef{
	Success:  {color: color.Green, emoji: "✅", nerd: "\uf00c", plain: "✓", squares: "■"},
	Fail:     {color: color.Red, emoji: "❌", nerd: "\uf00d", plain: "✗", squares: "■"},
	Warn:     {color: color.Yellow, emoji: "⚠️", nerd: "\uf071", plain: "!", squares: "■"},
	Progress: {color: color.Blue, emoji: "⏳", nerd: "\uf110", plain: "…", squares: "□"},
	Play:     {color: color.Cyan, emoji: "▶️", nerd: "\uf04b", plain: ">", squares: "▶"},
	Audio:    {color: color.Purple, emoji: "🎵", nerd: "\uf001", plain: "~", squares: "▪"},
	Video:    {color: color.Purple, emoji: "🎬", nerd: "\uf03d", plain: "#", squares: "▪"},
}

