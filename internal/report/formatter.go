// internal/report/formatter.go - 解析结果输出
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-runewidth"

	"code-analyzer/internal/dto"
	"code-analyzer/pkg/analyzer/stats"
	"code-analyzer/pkg/analyzer/types"
)

type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatYAML  OutputFormat = "yaml"
)

var ErrInvalidOutputFormat = errors.New("invalid output format")

var (
	fileHeaderFmt  = color.New(color.FgBlue, color.Bold).SprintfFunc()
	tableHeaderFmt = color.New(color.Bold).SprintfFunc()
	placeholderFmt = color.New(color.FgYellow).SprintfFunc()
	errorFmt       = color.New(color.FgRed).SprintfFunc()
	summaryFmt     = color.New(color.FgGreen).SprintfFunc()
)

var tableColumns = []string{"LINE", "TYPE", "NAME", "CONDITION", "VALUE"}

// ParseFormat 校验输出格式，大小写不敏感
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatJSON, FormatTable, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidOutputFormat, s)
}

// Formatter 将批量解析结果写到终端或管道
type Formatter struct {
	format    OutputFormat
	ShowStats bool
}

func NewFormatter(format OutputFormat, showStats bool) *Formatter {
	return &Formatter{format: format, ShowStats: showStats}
}

// Format 写出 batch。只有一个成功的文件且不需要统计时，json/yaml 只输出元素表本身。
func (f *Formatter) Format(batch *dto.BatchData, output io.Writer) error {
	switch f.format {
	case FormatJSON:
		return WriteJSON(output, f.payload(batch))
	case FormatYAML:
		return f.formatAsYAML(batch, output)
	case FormatTable:
		return f.formatAsTable(batch, output)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, f.format)
	}
}

func (f *Formatter) payload(batch *dto.BatchData) any {
	if len(batch.Files) != 1 || batch.Files[0].Data == nil {
		return batch
	}
	if f.ShowStats {
		return batch.Files[0].Data
	}
	return batch.Files[0].Data.Elements
}

// WriteJSON 输出带缩进的 JSON，条件中的 < > & 不转义
func WriteJSON(output io.Writer, v any) error {
	encoder := json.NewEncoder(output)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) formatAsYAML(batch *dto.BatchData, output io.Writer) error {
	var doc any
	switch v := f.payload(batch).(type) {
	case types.Table:
		doc = tableToYAML(v)
	case *dto.ResolveData:
		doc = resolveDataToYAML(v)
	case *dto.BatchData:
		files := make([]any, 0, len(v.Files))
		for _, file := range v.Files {
			item := yaml.MapSlice{{Key: "path", Value: file.Path}}
			if file.Data != nil {
				item = append(item, yaml.MapItem{Key: "data", Value: resolveDataToYAML(file.Data)})
			}
			if file.Error != "" {
				item = append(item, yaml.MapItem{Key: "error", Value: file.Error})
			}
			files = append(files, item)
		}
		doc = yaml.MapSlice{
			{Key: "files", Value: files},
			{Key: "summary", Value: summaryToYAML(v.Summary)},
			{Key: "failed", Value: v.Failed},
		}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = output.Write(data)
	return err
}

// tableToYAML 保持 line, type, name, condition, value 的字段顺序，占位元素输出为空串
func tableToYAML(table types.Table) []any {
	rows := make([]any, 0, len(table))
	for _, e := range table {
		if e.IsPlaceholder() {
			rows = append(rows, types.EmptyString)
			continue
		}
		rows = append(rows, yaml.MapSlice{
			{Key: "line", Value: e.Line},
			{Key: "type", Value: string(e.Kind)},
			{Key: "name", Value: e.Name},
			{Key: "condition", Value: e.Condition},
			{Key: "value", Value: e.Value},
		})
	}
	return rows
}

func resolveDataToYAML(data *dto.ResolveData) yaml.MapSlice {
	doc := yaml.MapSlice{
		{Key: "language", Value: data.Language},
		{Key: "elements", Value: tableToYAML(data.Elements)},
		{Key: "summary", Value: summaryToYAML(data.Summary)},
	}
	if len(data.Diagnostics) > 0 {
		diagnostics := make([]any, 0, len(data.Diagnostics))
		for _, d := range data.Diagnostics {
			diagnostics = append(diagnostics, yaml.MapSlice{
				{Key: "line", Value: d.Line},
				{Key: "nodeType", Value: d.NodeType},
				{Key: "message", Value: d.Message},
			})
		}
		doc = append(doc, yaml.MapItem{Key: "diagnostics", Value: diagnostics})
	}
	return doc
}

func summaryToYAML(s stats.Summary) yaml.MapSlice {
	byKind := yaml.MapSlice{}
	for _, kind := range types.AllKinds {
		if n := s.ByKind[kind]; n > 0 {
			byKind = append(byKind, yaml.MapItem{Key: string(kind), Value: n})
		}
	}
	return yaml.MapSlice{
		{Key: "elements", Value: s.Elements},
		{Key: "byKind", Value: byKind},
		{Key: "branches", Value: s.Branches},
		{Key: "loops", Value: s.Loops},
		{Key: "returns", Value: s.Returns},
		{Key: "declarations", Value: s.Declarations},
		{Key: "assignments", Value: s.Assignments},
		{Key: "functions", Value: s.Functions},
		{Key: "placeholders", Value: s.Placeholders},
		{Key: "cyclomaticComplexity", Value: s.CyclomaticComplexity},
	}
}

func (f *Formatter) formatAsTable(batch *dto.BatchData, output io.Writer) error {
	var buf bytes.Buffer
	for i, file := range batch.Files {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(fileHeaderFmt("%s", file.Path) + "\n")
		if file.Data == nil {
			buf.WriteString(errorFmt("ERROR: %s", file.Error) + "\n")
			continue
		}
		writeTable(&buf, file.Data.Elements)
		if f.ShowStats {
			buf.WriteString(summaryFmt("%s", SummaryLine(file.Data.Summary)) + "\n")
		}
	}
	if f.ShowStats && len(batch.Files) > 1 {
		buf.WriteString("\n" + summaryFmt("total: %d files, %d failed, %s",
			len(batch.Files), batch.Failed, SummaryLine(batch.Summary)) + "\n")
	}
	_, err := output.Write(buf.Bytes())
	return err
}

func writeTable(buf *bytes.Buffer, table types.Table) {
	if len(table) == 0 {
		buf.WriteString("No elements\n")
		return
	}

	rows := make([][]string, 0, len(table))
	for _, e := range table {
		if e.IsPlaceholder() {
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, []string{fmt.Sprint(e.Line), string(e.Kind), e.Name, e.Condition, e.Value})
	}

	widths := make([]int, len(tableColumns))
	for i, c := range tableColumns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	// 先补齐再着色，转义序列不计入宽度
	buf.WriteString(tableHeaderFmt("%s", joinRow(tableColumns, widths)) + "\n")
	for _, row := range rows {
		if row == nil {
			buf.WriteString(placeholderFmt("%s", "(unsupported)") + "\n")
			continue
		}
		buf.WriteString(joinRow(row, widths) + "\n")
	}
}

func joinRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(cell)
		if i < len(cells)-1 {
			sb.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
		}
	}
	return sb.String()
}

// SummaryLine 一行文本形式的统计
func SummaryLine(s stats.Summary) string {
	return fmt.Sprintf("elements %d, branches %d, loops %d, returns %d, declarations %d, assignments %d, unsupported %d, complexity %d",
		s.Elements, s.Branches, s.Loops, s.Returns, s.Declarations, s.Assignments, s.Placeholders, s.CyclomaticComplexity)
}
