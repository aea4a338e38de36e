// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/key"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// Options lists the accepted values of a string field. Empty means any value.
	Options []string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Parse converts command line arguments into a value of the field's type.
func (f *Field) Parse(args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no value given for %s", f.Key)
	}

	switch f.Value.(type) {
	case string:
		if len(f.Options) > 0 && !lo.Contains(f.Options, args[0]) {
			return nil, fmt.Errorf("invalid value %q for %s, expected one of: %s", args[0], f.Key, strings.Join(f.Options, ", "))
		}
		return args[0], nil
	case int:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q for %s", args[0], f.Key)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q for %s", args[0], f.Key)
		}
		return b, nil
	case []string:
		return args, nil
	default:
		return nil, fmt.Errorf("unsupported type %T for %s", f.Value, f.Key)
	}
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Options     []string `json:"options,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        reflect.TypeOf(f.Value).String(),
		Options:     f.Options,
	})
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func register(k string, v any, desc string, options ...string) {
	if _, exists := Default[k]; exists {
		panic("Duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc, Options: options}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.ReleaseURL, constant.DefaultReleaseURL, "Releases endpoint of the template repository.\nMust point at a GitHub-compatible releases API")
	register(key.ReleaseArchive, constant.ArchiveZip, "Archive format to download", constant.ArchiveZip, constant.ArchiveTarball)
	register(key.ReleaseVersionsTTL, 60, "Minutes to remember the remote version list")
	register(key.CacheRoot, "", "Directory holding the release cache.\nDefaults to ~/.bingolink when empty")

	register(key.RemoteTimeout, 30, "Seconds to wait for the release API")
	register(key.RemoteToken, "", "GitHub token used for API requests.\nFalls back to the system keyring, see \"bingolink auth\"")
	register(key.DownloadTimeout, 300, "Seconds to wait for a release archive download")

	register(key.IconsVariant, "plain", "Icons variant.\nnerd requires a nerd-font", "emoji", "nerd", "plain", "kaomoji", "squares")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "From less to most verbose", "panic", "fatal", "error", "warn", "info", "debug", "trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.LogsMaxSize, 10, "Maximum size in megabytes of a log file before it gets rotated")
	register(key.LogsMaxBackups, 3, "Maximum number of rotated log files to keep")
	register(key.LogsCompress, false, "Compress rotated log files")

	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"join":     strings.Join,
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			if value == "" {
				return style.Faint("(empty)")
			}
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Options }}
{{ blue "Options:" }} {{ join .Options ", " }}{{ end }}`))
