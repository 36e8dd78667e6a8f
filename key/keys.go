// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Engine selection and playback timing.
const (
	PlayerEngine           = "player.engine"
	PlayerMouseHideTimeout = "player.mouse_hide_timeout"
	PlayerGraceMs          = "player.grace_ms"
	PlayerPollMs           = "player.poll_ms"
	PlayerSurfacePollMs    = "player.surface_poll_ms"
	PlayerSettleMs         = "player.settle_ms"
	PlayerStallWarningMs   = "player.stall_warning_ms"
	PlayerExtraArgs        = "player.extra_args"
)

// Presentation surface.
const (
	SurfaceMode = "surface.mode"
)

// Batch mode.
const (
	BatchDir = "batch.dir"
)

// History persistence.
const (
	HistorySave = "history.save"
)

// Logging infrastructure.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI execution environment.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
