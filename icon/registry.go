package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Progress Icon = iota
	Success
	Fail
	Warn
	Info
	Release
	Template
	Folder
)

var icons = map[Icon]*iconDef{
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・;)",
		squares: "◫",
	},
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "ok",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "▣",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "error",
		kaomoji: "(×_×)",
		squares: "▨",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "warn",
		kaomoji: "(>_<)",
		squares: "▧",
	},
	Info: {
		emoji:   "ℹ️",
		nerd:    "",
		plain:   "info",
		kaomoji: "(・ω・)",
		squares: "▤",
	},
	Release: {
		emoji:   "📦",
		nerd:    "",
		plain:   "release",
		kaomoji: "[¬º-°]¬",
		squares: "▦",
	},
	Template: {
		emoji:   "🧩",
		nerd:    "",
		plain:   "-",
		kaomoji: "(•̀ᴗ•́)",
		squares: "▥",
	},
	Folder: {
		emoji:   "📁",
		nerd:    "",
		plain:   "dir",
		kaomoji: "(⌐■_■)",
		squares: "▩",
	},
}
