package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mikey-austin/mu_browse/internal/core"
	"github.com/mikey-austin/mu_browse/pkg/mu"
	"github.com/pterm/pterm"
)

// HumanPrinter prints human-readable output.
type HumanPrinter struct {
	// Out defaults to stdout.
	Out io.Writer
}

// Print renders human output.
func (p HumanPrinter) Print(v any) error {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	switch data := v.(type) {
	case core.NodesResult:
		return printNodes(out, data)
	case core.ItemResult:
		return printItems(out, []mu.MediaItem{data.Item})
	case core.ItemsResult:
		return printItems(out, data.Items)
	case core.QueueResult:
		return printQueue(out, data)
	case core.CommandResult:
		return printCommand(out, data)
	case core.EventResult:
		return printEvent(out, data)
	default:
		_, err := fmt.Fprintln(out, "ok")
		return err
	}
}

func printNodes(out io.Writer, result core.NodesResult) error {
	data := pterm.TableData{{"NAME", "KIND", "NODE_ID"}}
	for _, node := range result.Nodes {
		data = append(data, []string{node.Name, node.Kind, node.NodeID})
	}
	return renderTable(out, data)
}

func printItems(out io.Writer, items []mu.MediaItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "(empty)")
		return err
	}
	data := pterm.TableData{{"TITLE", "SUBTITLE", "TYPE", "FLAGS", "LEN", "ID"}}
	for _, item := range items {
		data = append(data, []string{
			item.Title,
			item.Subtitle,
			item.MediaType,
			flags(item),
			formatMS(item.DurationMS),
			item.ID,
		})
	}
	return renderTable(out, data)
}

func printQueue(out io.Writer, result core.QueueResult) error {
	if len(result.Queue.Items) == 0 {
		_, err := fmt.Fprintln(out, "(no queue)")
		return err
	}
	data := pterm.TableData{{"INDEX", "TITLE", "SUBTITLE", "LEN", "ID"}}
	for idx, item := range result.Queue.Items {
		index := strconv.Itoa(idx)
		if int64(idx) == result.Queue.StartIndex {
			index = "> " + index
		}
		data = append(data, []string{index, item.Title, item.Subtitle, formatMS(item.DurationMS), item.ID})
	}
	if err := renderTable(out, data); err != nil {
		return err
	}
	if result.Queue.StartPositionMS > 0 {
		_, err := fmt.Fprintf(out, "start at %s\n", formatMS(result.Queue.StartPositionMS))
		return err
	}
	return nil
}

func printCommand(out io.Writer, result core.CommandResult) error {
	status := "handled"
	if !result.Handled {
		status = "not handled"
	}
	_, err := fmt.Fprintf(out, "%s: %s\n", result.Name, status)
	return err
}

func printEvent(out io.Writer, result core.EventResult) error {
	ts := time.Unix(result.Event.TS, 0).Format(time.TimeOnly)
	line := fmt.Sprintf("%s  %s", ts, result.Event.Type)
	if len(result.Event.Body) > 0 {
		line += "  " + compact(result.Event.Body)
	}
	_, err := fmt.Fprintln(out, line)
	return err
}

func renderTable(out io.Writer, data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(data).Render()
}

func flags(item mu.MediaItem) string {
	switch {
	case item.Browsable && item.Playable:
		return "browse,play"
	case item.Browsable:
		return "browse"
	case item.Playable:
		return "play"
	default:
		return ""
	}
}

func formatMS(ms int64) string {
	if ms <= 0 {
		return ""
	}
	secs := ms / 1000
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func compact(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
