package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
	"github.com/TimurManjosov/ffc-commons-go/pkg/model"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

type userView struct {
	Key      string            `json:"key" yaml:"key"`
	UserName string            `json:"userName" yaml:"user_name"`
	Email    string            `json:"email" yaml:"email"`
	Country  string            `json:"country" yaml:"country"`
	Custom   map[string]string `json:"custom" yaml:"custom"`
}

type detailView struct {
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	Index   int    `yaml:"index"`
	Reason  string `yaml:"reason"`
	Success bool   `yaml:"success"`
}

func newDetailView(d model.EvalDetail[model.Value]) detailView {
	return detailView{
		Key:     d.KeyName(),
		Value:   d.Value().String(),
		Index:   d.Index(),
		Reason:  d.Reason(),
		Success: d.IsSuccess(),
	}
}

// PrintUser outputs a decoded user. JSON output uses a flat view of the
// user, not the request wire shape.
func PrintUser(w io.Writer, u model.User, format OutputFormat) error {
	view := userView{Key: u.Key(), UserName: u.UserName(), Email: u.Email(), Country: u.Country(), Custom: u.Custom()}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatYAML:
		return printYAML(w, view)
	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.Header("Attribute", "Value")
		table.Append(model.AttrKeyID, view.Key)
		table.Append(model.AttrName, view.UserName)
		table.Append(model.AttrEmail, view.Email)
		table.Append(model.AttrCountry, view.Country)
		for _, name := range slices.Sorted(maps.Keys(view.Custom)) {
			table.Append(name, view.Custom[name])
		}
		return table.Render()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintDetail outputs one evaluation result. JSON output is the wire form.
func PrintDetail(w io.Writer, d model.EvalDetail[model.Value], format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printWire(w, d)
	case FormatYAML:
		return printYAML(w, newDetailView(d))
	case FormatTable:
		return printDetailTable(w, []model.EvalDetail[model.Value]{d})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintAllFlags outputs an aggregate result. JSON output is the wire form.
func PrintAllFlags(w io.Writer, s model.AllFlagStates[model.Value], format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printWire(w, s)
	case FormatYAML:
		views := make([]detailView, 0, s.Len())
		for _, d := range s.Data() {
			views = append(views, newDetailView(d))
		}
		return printYAML(w, map[string]any{
			"success": s.Success(),
			"message": s.Message(),
			"data":    views,
		})
	case FormatTable:
		if !s.Success() {
			_, err := fmt.Fprintf(w, "Request failed: %s\n", s.Message())
			return err
		}
		return printDetailTable(w, s.Data())
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printWire(w io.Writer, v any) error {
	out, err := codec.Serialize(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func printYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printDetailTable(w io.Writer, details []model.EvalDetail[model.Value]) error {
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Value", "Index", "Success", "Reason")

	for _, d := range details {
		reason := truncate(d.Reason(), 40)
		table.Append(
			d.KeyName(),
			d.Value().String(),
			strconv.Itoa(d.Index()),
			strconv.FormatBool(d.IsSuccess()),
			reason,
		)
	}

	return table.Render()
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
