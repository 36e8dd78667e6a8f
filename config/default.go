package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/muesli/reflow/wordwrap"
	"github.com/quickplay-cli/quickplay/color"
	"github.com/quickplay-cli/quickplay/constant"
	"github.com/quickplay-cli/quickplay/key"
	"github.com/quickplay-cli/quickplay/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// descriptionWidth is the column descriptions are wrapped at in Pretty output.
const descriptionWidth = 72

// Field is a single registered configuration entry.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field with its current and default values for terminal display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable bound to this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds every registered configuration field by key.
var Default = make(map[string]Field)

// EnvExposed holds the keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerEngine, "vlc", "Playback engine to use.\nAvailable options are: vlc, mpv, libmpv")
	register(key.PlayerMouseHideTimeout, 10, "Idle time before the engine hides the mouse pointer")
	register(key.PlayerGraceMs, 500, "Milliseconds to wait after starting playback before the first state check")
	register(key.PlayerPollMs, 100, "Milliseconds between state checks when no surface window is open")
	register(key.PlayerSurfacePollMs, 50, "Milliseconds between state checks while a surface window is open")
	register(key.PlayerSettleMs, 100, "Milliseconds to wait after playback ends before stopping the engine")
	register(key.PlayerStallWarningMs, 0, "Warn in the session log when playback has not reached a terminal state after this many milliseconds.\n0 disables the warning")
	register(key.PlayerExtraArgs, []string{}, "Additional options passed to the engine on startup")
	register(key.SurfaceMode, "auto", "When to draw video into an application-owned frameless window instead of engine fullscreen.\nAvailable options are: auto (macOS only), always, never")
	register(key.BatchDir, "", "Directory played by batch mode.\nEmpty means the examples directory next to the executable")
	register(key.HistorySave, true, "Record the outcome of every played file")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain, squares")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"wrap":     func(s string) string { return wordwrap.String(s, descriptionWidth) },
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint (wrap .Description) }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
