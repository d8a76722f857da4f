package gui

import (
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/flakesim/internal/anim"
	"github.com/san-kum/flakesim/internal/config"
	"github.com/san-kum/flakesim/internal/flake"
	"github.com/san-kum/flakesim/internal/viz"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 400
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColError   = rl.NewColor(255, 71, 87, 255)
)

// Builder creates the controller for a window surface.
type Builder func(surface flake.Surface, location anim.Location) (*anim.Controller, error)

type App struct {
	Ctrl    *anim.Controller
	Surface *Surface
	Form    *viz.Form
	Link    *viz.ShareLink
	Font    rl.Font

	// The flake is drawn into TargetTex so throttled frames keep showing the last image.
	TargetTex rl.RenderTexture2D

	start   time.Time
	lastErr error
	quit    bool
}

// initWindow initializes the Raylib window with size 1280×720 and title "flakesim", sets the target FPS to 60, and disables the default exit key.
func initWindow() {
	rl.InitWindow(windowWidth, windowHeight, "flakesim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font when it is installed and falls
// back to the raylib default font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the controller onto a render texture covering the flake area.
// The window must already be open.
func NewApp(build Builder, link *viz.ShareLink) (*App, error) {
	surface := NewSurface(rl.NewRectangle(0, 0, windowWidth-panelWidth, windowHeight))
	ctrl, err := build(surface, link)
	if err != nil {
		return nil, err
	}

	form := viz.NewForm()
	form.Populate(ctrl.Params())

	app := &App{
		Ctrl:      ctrl,
		Surface:   surface,
		Form:      form,
		Link:      link,
		Font:      loadFont(),
		TargetTex: rl.LoadRenderTexture(windowWidth-panelWidth, windowHeight),
	}

	rl.BeginTextureMode(app.TargetTex)
	rl.ClearBackground(ColBg)
	rl.EndTextureMode()

	return app, nil
}

// Run opens the window and blocks until it is closed. It returns the error
// that halted the animation, if any.
func Run(build Builder, link *viz.ShareLink) error {
	initWindow()
	defer rl.CloseWindow()

	app, err := NewApp(build, link)
	if err != nil {
		return err
	}
	defer app.Close()

	app.RunLoop()
	return app.Ctrl.Err()
}

func (a *App) Close() {
	rl.UnloadRenderTexture(a.TargetTex)
}

func (a *App) RunLoop() {
	a.start = time.Now()
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape):
		a.quit = true
	case rl.IsKeyPressed(rl.KeyTab):
		if rl.IsKeyDown(rl.KeyLeftShift) {
			a.Form.Prev()
		} else {
			a.Form.Next()
		}
	case rl.IsKeyPressed(rl.KeyUp):
		a.Form.Adjust(1)
	case rl.IsKeyPressed(rl.KeyDown):
		a.Form.Adjust(-1)
	case rl.IsKeyPressed(rl.KeyD) || rl.IsKeyPressed(rl.KeySpace):
		a.Form.Toggle()
	case rl.IsKeyPressed(rl.KeyBackspace):
		a.Form.Type(0)
	case rl.IsKeyPressed(rl.KeyR):
		a.Form.Reload(a.Ctrl.Params())
	case rl.IsKeyPressed(rl.KeyEnter):
		a.lastErr = a.Ctrl.Submit(a.Form.Values())
	}

	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if (ch >= '0' && ch <= '9') || ch == '.' {
			a.Form.Type(rune(ch))
		}
	}
}

func (a *App) Draw() {
	if !a.Ctrl.Halted() {
		p := a.Ctrl.Options().Ranges.Apply(a.Ctrl.Params())
		a.Surface.Fit(flake.Extent(p.Size, p.Depth))

		rl.BeginTextureMode(a.TargetTex)
		if !a.Ctrl.Frame(time.Since(a.start)) {
			a.lastErr = a.Ctrl.Err()
		}
		rl.EndTextureMode()
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(a.TargetTex.Texture.Width), -float32(a.TargetTex.Texture.Height))
	rl.DrawTextureRec(a.TargetTex.Texture, src, rl.NewVector2(0, 0), rl.White)

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	x := windowWidth - panelWidth + 30
	a.drawText("flakesim", x, 30, 24, ColSelect)

	status, col := "RUNNING", ColSelect
	if a.Ctrl.Halted() {
		status, col = "HALTED", ColError
	}
	a.drawText(status, windowWidth-120, 34, 16, col)

	st := a.Ctrl.State()
	a.drawText(fmt.Sprintf("frames   %d", st.Frames), x, 80, 16, ColText)
	a.drawText(fmt.Sprintf("angle    %.1f", st.Params.BaseAngle), x, 104, 16, ColText)
	a.drawText(fmt.Sprintf("hue      %s", flake.HueColor(st.Params.BaseAngle).CSS()), x, 128, 16, strokeColor(flake.HueColor(st.Params.BaseAngle)))

	values := a.Form.Values()
	y := 180
	for _, key := range config.Keys {
		v := values.Get(key)
		if key == config.KeyDirection {
			v = "[ ]"
			if values.Has(key) {
				v = "[x]"
			}
		}
		col := ColText
		prefix := "  "
		if key == a.Form.Selected() {
			col, prefix = ColSelect, "> "
		}
		a.drawText(fmt.Sprintf("%s%-11s %s", prefix, key, v), x, y, 16, col)
		y += 26
	}

	a.drawText("link", x, y+20, 14, ColTextDim)
	a.drawText(a.Link.String(), x, y+40, 12, ColAccent)
	if a.lastErr != nil {
		a.drawText(a.lastErr.Error(), x, y+70, 12, ColError)
	}

	a.drawText("[TAB] FIELD  [UP/DOWN] EDIT  [D] DIRECTION", x, 650, 14, ColTextDim)
	a.drawText("[ENTER] SUBMIT  [R] RELOAD  [Q] QUIT", x, 672, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
