package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goldyfruit/opsview-inventory/internal/types"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeJSON      Mode = "json"
	ModeYAML      Mode = "yaml"
	ModeInventory Mode = "inventory"
	ModeStatic    Mode = "ansible-static"
	ModeSSH       Mode = "ssh"
	ModeTable     Mode = "table"
)

// Selection mirrors the output switches given on the command line.
type Selection struct {
	JSON   bool
	YAML   bool
	List   bool
	Host   string
	Static bool
	SSH    bool
	Table  bool
}

// Select returns the render mode for the given switches. When several are
// set the first of json, yaml, list/host, ansible-static, ssh, table wins.
// ok is false when no output was requested.
func Select(sel Selection) (Mode, bool) {
	switch {
	case sel.JSON:
		return ModeJSON, true
	case sel.YAML:
		return ModeYAML, true
	case sel.List || sel.Host != "":
		return ModeInventory, true
	case sel.Static:
		return ModeStatic, true
	case sel.SSH:
		return ModeSSH, true
	case sel.Table:
		return ModeTable, true
	default:
		return "", false
	}
}

// Source is an aggregated inventory ready to render.
type Source interface {
	Document() any
	Groups() []types.Group
}

func Render(w io.Writer, mode Mode, src Source) error {
	switch mode {
	case ModeJSON, ModeInventory:
		return EmitJSON(w, src.Document())
	case ModeYAML:
		return EmitYAML(w, src.Document())
	case ModeStatic:
		return RenderStatic(w, src.Groups())
	case ModeSSH:
		return RenderSSHConfig(w, src.Groups())
	case ModeTable:
		return RenderTable(w, src.Groups())
	default:
		return fmt.Errorf("invalid output mode: %s", mode)
	}
}

func InitStyles() {
	if os.Getenv("NO_COLOR") != "" {
		pterm.DisableColor()
	}
}

// EmitJSON writes value with sorted map keys and four space indentation.
func EmitJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}

func EmitYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(value)
}
