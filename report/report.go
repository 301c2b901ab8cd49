// Package report renders a check.Report as styled text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	j "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	logcontract "github.com/reoring/logcontract"
	"github.com/reoring/logcontract/check"
	"github.com/reoring/logcontract/i18n"
	"github.com/reoring/logcontract/tree"
)

// Format selects the output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts the Format names case-sensitively; "" means Text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", Text:
		return Text, nil
	case JSON, YAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, json or yaml)", s)
}

// Write renders rep to w.
func Write(w io.Writer, rep *check.Report, f Format) error {
	switch f {
	case "", Text:
		return writeText(w, rep)
	case JSON:
		b, err := j.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(forYAML(rep)); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown report format %q", f)
}

type styles struct {
	pass, fail, heading, path, dim lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		pass:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		fail:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		path:    r.NewStyle().Foreground(lipgloss.Color("214")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func writeText(w io.Writer, rep *check.Report) error {
	st := newStyles(w)
	var b strings.Builder

	if rep.Passed() {
		b.WriteString(st.pass.Render("PASS"))
	} else {
		b.WriteString(st.fail.Render("FAIL"))
	}
	b.WriteByte('\n')

	labels := []string{i18n.T("report.lines", nil), i18n.T("report.well_formed", nil), i18n.T("report.records", nil)}
	width := 0
	for _, l := range labels {
		width = max(width, runewidth.StringWidth(l))
	}
	for i, n := range []int{rep.Lines, rep.WellFormed, rep.Records} {
		fmt.Fprintf(&b, "  %s  %d\n", runewidth.FillRight(labels[i], width), n)
	}

	if len(rep.RoundTripFailures) > 0 {
		fmt.Fprintf(&b, "\n%s (%d)\n", st.heading.Render(i18n.T(logcontract.CodeRoundTrip, nil)), len(rep.RoundTripFailures))
		for _, f := range rep.RoundTripFailures {
			fmt.Fprintf(&b, "  line %d at %s: %s\n", f.LineNo, st.path.Render(f.Path), tree.Text(f.Fragment))
			fmt.Fprintf(&b, "    %s\n", f.Line)
		}
	}
	if fv := rep.FieldViolation; fv != nil {
		fmt.Fprintf(&b, "\n%s\n", st.heading.Render(i18n.T("report.field_violation", nil)))
		fmt.Fprintf(&b, "  line %d %s: %s\n", fv.LineNo, st.path.Render(fv.Field), fv.Message)
		fmt.Fprintf(&b, "    %s\n", fv.Line)
	}
	if len(rep.Notes) > 0 {
		fmt.Fprintf(&b, "\n%s\n", st.dim.Render(i18n.T("report.notes", nil)))
		for _, n := range rep.Notes {
			fmt.Fprintf(&b, "  line %d: %s\n", n.LineNo, n.Message)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// forYAML turns number literals into YAML numbers. yaml.v3 would otherwise
// quote json.Number values as strings.
func forYAML(rep *check.Report) *check.Report {
	out := *rep
	out.RoundTripFailures = make([]check.RoundTripFailure, len(rep.RoundTripFailures))
	for i, f := range rep.RoundTripFailures {
		f.Fragment = yamlValue(f.Fragment)
		out.RoundTripFailures[i] = f
	}
	if rep.FieldViolation != nil {
		fv := *rep.FieldViolation
		fv.Value = yamlValue(fv.Value)
		out.FieldViolation = &fv
	}
	return &out
}

func yamlValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if tree.IsInteger(x) {
			if i, err := x.Int64(); err == nil {
				return i
			}
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: x.String()}
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = yamlValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = yamlValue(e)
		}
		return out
	}
	return v
}
