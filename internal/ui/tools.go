package ui

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"WormBoard/internal/config"
	"WormBoard/internal/export"
	"WormBoard/internal/tools"
)

// NewToolbar builds the tool switcher and history controls for a drawing
// board. Viewers get no toolbar.
func NewToolbar(b *BoardWidget, w fyne.Window, cfg config.Config) fyne.CanvasObject {
	s := b.Session()
	active := widget.NewLabel(s.ActiveTool().String())
	selectTool := func(k tools.Kind) func() {
		return func() {
			s.SetActiveTool(k)
			active.SetText(k.String())
			b.refreshCandidates()
		}
	}

	toolBar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), selectTool(tools.Pencil)),
		widget.NewToolbarAction(theme.ColorChromaticIcon(), selectTool(tools.Wand)),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), selectTool(tools.Line)),
	)

	undo, redo, clearAll := historyButtons(b)

	fileBar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { b.saveSnapshot(w, cfg.Export.JSONPath) }),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { b.loadSnapshot(w) }),
		widget.NewToolbarAction(theme.DownloadIcon(), func() { b.exportPDF(w, cfg) }),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		active,
		toolBar,
		widget.NewSeparator(),
		undo, redo, clearAll,
		widget.NewSeparator(),
		fileBar,
		layout.NewSpacer(),
	)
}

// historyButtons returns undo, redo and clear buttons that are only enabled
// while they would change the board.
func historyButtons(b *BoardWidget) (undo, redo, clearAll *widget.Button) {
	s := b.Session()
	undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), s.Undo)
	redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), s.Redo)
	clearAll = widget.NewButtonWithIcon("", theme.DeleteIcon(), s.ClearAll)
	for _, btn := range []*widget.Button{undo, redo, clearAll} {
		btn.Importance = widget.LowImportance
	}
	b.onHistory = func() {
		setEnabled(undo, s.CanUndo())
		setEnabled(redo, s.CanRedo())
		setEnabled(clearAll, len(s.OrderedPoints()) > 0)
	}
	b.onHistory()
	return undo, redo, clearAll
}

func setEnabled(btn *widget.Button, on bool) {
	if on {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

func (b *BoardWidget) saveSnapshot(w fyne.Window, suggested string) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("Error closing writer: %v", err)
			}
		}()

		points := b.session.OrderedPoints()
		if err := export.WriteJSON(writer, points); err != nil {
			log.Printf("saveSnapshot: %v", err)
			b.SetStatus("Error saving file")
			return
		}
		b.SetStatus(fmt.Sprintf("Saved %d points", len(points)))
	}, w)
	d.SetFileName(filepath.Base(suggested))
	d.Show()
}

func (b *BoardWidget) loadSnapshot(w fyne.Window) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if reader == nil {
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("Error closing reader: %v", err)
			}
		}()

		points, err := export.ReadJSON(reader)
		if err != nil {
			log.Printf("loadSnapshot: %v", err)
			b.SetStatus("Error reading file - invalid format")
			return
		}
		b.session.Load(points)
		b.SetStatus(fmt.Sprintf("Loaded %d points", len(points)))
	}, w)
}

func (b *BoardWidget) exportPDF(w fyne.Window, cfg config.Config) {
	points := b.session.OrderedPoints()
	if err := export.PDF(cfg.Export.PDFPath, points, cfg.DotSize); err != nil {
		dialog.ShowError(err, w)
		return
	}
	b.SetStatus(fmt.Sprintf("Exported %d points to %s", len(points), cfg.Export.PDFPath))
}
