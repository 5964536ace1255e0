package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"streamd/internal/api"
	pkgstrings "streamd/pkg/strings"
)

// sourcePathMaxLen keeps long media paths from blowing up the table width.
const sourcePathMaxLen = 48

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderStreams writes the stream inventory as a table.
func RenderStreams(out io.Writer, streams []api.StreamStatus) {
	if len(streams) == 0 {
		fmt.Fprintln(out, text.FgYellow.Sprint("No streams found"))
		return
	}

	t := newTable(out)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ID"),
		text.FgHiCyan.Sprint("STATE"),
		text.FgHiCyan.Sprint("REPEAT"),
		text.FgHiCyan.Sprint("PID"),
		text.FgHiCyan.Sprint("DELIVERY URL"),
		text.FgHiCyan.Sprint("SOURCE"),
	})

	for _, s := range streams {
		t.AppendRow(table.Row{
			s.ID,
			renderState(s.Running),
			renderRepeatCount(s.RepeatCount),
			renderPID(s.PID),
			s.DeliveryURL,
			pkgstrings.Truncate(s.SourcePath, sourcePathMaxLen),
		})
	}
	t.Render()
}

// RenderDaemonStatus writes daemon health as a key-value table.
func RenderDaemonStatus(out io.Writer, status *api.DaemonStatus) {
	t := newTable(out)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KEY"),
		text.FgHiCyan.Sprint("VALUE"),
	})

	rec := status.Reconciler
	rows := []table.Row{
		{"Hostname", status.Hostname},
		{"Media directory", status.MediaDir},
		{"Streams cataloged", strconv.Itoa(status.Cataloged)},
		{"Streams running", strconv.Itoa(status.Running)},
		{"Daemon started", status.StartedAt.Format("2006-01-02 15:04:05")},
		{"Reconcile cycles", strconv.FormatInt(rec.Cycles, 10)},
		{"Scan errors", strconv.FormatInt(rec.ScanErrors, 10)},
		{"Id collisions", strconv.FormatInt(rec.Collisions, 10)},
		{"Streams reaped", strconv.FormatInt(rec.Reaped, 10)},
	}
	for _, row := range rows {
		t.AppendRow(row)
	}
	t.Render()
}

func renderState(running bool) string {
	if running {
		return text.FgGreen.Sprint("Running")
	}
	return text.FgRed.Sprint("Stopped")
}

func renderRepeatCount(repeatCount int) string {
	if repeatCount < 0 {
		return "infinite"
	}
	return strconv.Itoa(repeatCount)
}

func renderPID(pid int) string {
	if pid == 0 {
		return "-"
	}
	return strconv.Itoa(pid)
}
