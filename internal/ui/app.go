package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// RunApp opens the main window around board and blocks until it closes.
// toolbar may be nil.
func RunApp(title string, board *BoardWidget, toolbar func(w fyne.Window) fyne.CanvasObject) {
	myApp := app.New()
	myWindow := myApp.NewWindow(title)
	myWindow.Resize(fyne.NewSize(1024, 768))

	var top fyne.CanvasObject
	if toolbar != nil {
		top = toolbar(myWindow)
	}
	content := container.NewBorder(top, board.StatusBar(), nil, nil, board)

	myWindow.SetContent(content)
	myWindow.Canvas().Focus(board)
	myWindow.ShowAndRun()
}
