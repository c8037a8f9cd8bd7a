package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/protedit/version"
)

const (
	fontSize12 = float32(12)
	fontSize14 = float32(14)
	fontSize16 = float32(16)
	fontSize18 = float32(18)
	lineHeight = float32(20)
)

var helpLines = []string{
	"H: Add helix | S: Add sheet | J: Connect",
	"Del: Remove | R: Rotate | C: Recolor | T: Transform",
	"E: Save | Shift+E: Save to scene.json | Esc: Clear",
	"Arrows: Rotate selected element",
	"Double Click: Select element | Drag element: Move",
	"",
	"1/2/3: Cartoon/Stick/Line | Space: Spin",
	"Click atom: Select | D: Demo chain | X: Export atoms",
	"",
	"Left Drag: Rotate | Shift+Drag: Pan | Wheel: Zoom",
	"Home: Reset | F: Frame | G: Grid | W: Edges",
}

func (app *App) text(s string, x, y, size float32, c rl.Color) {
	rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, 1, c)
}

// drawUI draws the user interface
func (app *App) drawUI() {
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())
	y := float32(10)

	// === INFO ===
	app.text(app.session.Info(), 10, y, fontSize18, rl.White)
	y += lineHeight
	if info := app.session.StructureInfo(); info != "" {
		app.text(info, 10, y, fontSize16, rl.LightGray)
		y += lineHeight
	}
	if n := app.session.Selection().Len(); n > 0 {
		app.text(fmt.Sprintf("Selected: %d", n), 10, y, fontSize16, rl.Red)
		y += lineHeight
	}
	if app.Interaction.hoveredID != "" {
		app.text(app.Interaction.hoveredID, 10, y, fontSize14, rl.Gray)
		y += lineHeight
	}
	y += lineHeight

	// === HELP ===
	if app.UI.showHelp {
		for _, line := range helpLines {
			app.text(line, 10, y, fontSize14, rl.LightGray)
			y += lineHeight
		}
	} else {
		app.text("F1: Help", 10, y, fontSize14, rl.Gray)
	}

	// Loading indicator
	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		spinnerChars := []string{"|", "/", "-", "\\"}
		spinnerIdx := int(elapsed*10) % len(spinnerChars)
		loadingText := fmt.Sprintf("%s Loading... (%.1fs)", spinnerChars[spinnerIdx], elapsed)

		boxWidth := float32(250)
		boxHeight := float32(40)
		boxX := screenWidth - boxWidth - 20
		boxY := float32(20)

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)

		textSize := rl.MeasureTextEx(app.UI.font, loadingText, fontSize18, 1)
		app.text(loadingText, boxX+(boxWidth-textSize.X)/2, boxY+(boxHeight-textSize.Y)/2, fontSize18, rl.Yellow)
	}

	// Status bar
	if st := app.session.Status(); st.Text != "" {
		c := rl.Lime
		if st.Err {
			c = rl.NewColor(255, 100, 100, 255)
		}
		rl.DrawRectangle(0, int32(screenHeight-60), int32(screenWidth), 28, rl.NewColor(0, 0, 0, 180))
		app.text(st.Text, 10, screenHeight-54, fontSize16, c)
	}

	app.drawPrompt(screenWidth, screenHeight)

	// Version and FPS in bottom-left corner
	bottomY := screenHeight - 24
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	app.text(versionText, 10, bottomY, fontSize12, rl.Gray)

	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	app.text(fmt.Sprintf("FPS: %d", rl.GetFPS()), 10+versionWidth+15, bottomY, fontSize12, rl.Lime)
}

// drawPrompt draws the open input prompt as a centered box
func (app *App) drawPrompt(screenWidth, screenHeight float32) {
	p := app.session.Prompt()
	if p == nil {
		return
	}

	boxWidth := float32(320)
	boxHeight := float32(70) + float32(len(p.Fields))*lineHeight*1.5
	boxX := (screenWidth - boxWidth) / 2
	boxY := (screenHeight - boxHeight) / 2

	rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(20, 24, 34, 240))
	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)

	y := boxY + 10
	app.text(p.Title, boxX+10, y, fontSize18, rl.Yellow)
	y += lineHeight * 1.5

	for i, f := range p.Fields {
		c := rl.LightGray
		value := f.Value
		if i == p.Active {
			c = rl.White
			// blinking cursor
			if int(rl.GetTime()*2)%2 == 0 {
				value += "_"
			}
		}
		app.text(fmt.Sprintf("%s: %s", f.Label, value), boxX+20, y, fontSize16, c)
		y += lineHeight * 1.5
	}
	app.text("Enter: OK | Tab: Next | Esc: Cancel", boxX+10, y, fontSize12, rl.Gray)
}
