// Package render draws the show with raylib: the harmonic body, a static
// starfield, and a bloom/depth-of-field pass. It implements the driver's
// render boundary.
package render

import (
	_ "embed"
	"log/slog"
	"time"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/harmonia/internal/audio"
	"github.com/san-kum/harmonia/internal/driver"
	"github.com/san-kum/harmonia/internal/scene"
)

var (
	//go:embed shaders/harmonics.vs
	harmonicsVS string
	//go:embed shaders/harmonics.fs
	harmonicsFS string
	//go:embed shaders/post.fs
	postFS string
)

var ColBg = rl.NewColor(4, 4, 8, 255)

const (
	starCount  = 2000
	starRadius = 400
	fovy       = 45.0
)

type Options struct {
	Width, Height int32
	Fullscreen    bool
	StarSeed      int64
	Audio         bool
	Driver        []driver.Option
}

func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, StarSeed: 1, Audio: true}
}

// App owns the window and every GPU resource.
type App struct {
	opts   Options
	log    *slog.Logger
	driver *driver.Driver

	spawned bool
	exit    bool
	frame   driver.Frame

	camera    rl.Camera3D
	geometry  scene.Geometry
	vertices  []float32
	model     rl.Model
	shader    rl.Shader
	post      rl.Shader
	target    rl.RenderTexture2D
	stars     []scene.Star
	placement scene.Placement

	locHarmonics, locViewPos        int32
	locFocus, locAperture, locBloom int32
	locResolution                   int32
	bloom                           float32
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(opts.Width, opts.Height, "harmonia")
	if opts.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Run opens the window and plays the show until it requests exit or the
// window is closed. It blocks.
func Run(source driver.Source, opts Options, log *slog.Logger) error {
	initWindow(opts)
	defer rl.CloseWindow()

	app := &App{opts: opts, log: log}
	dopts := append([]driver.Option{driver.WithLogger(log)}, opts.Driver...)
	if opts.Audio {
		player := audio.NewPlayer(log)
		defer player.Close()
		dopts = append(dopts, driver.WithAudio(player))
	}
	app.driver = driver.New(source, app, dopts...)
	defer app.unload()

	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !a.exit && !rl.WindowShouldClose() {
		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		if err := a.driver.Tick(dt); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

// SpawnScene uploads the body mesh and shaders. Called once by the driver.
func (a *App) SpawnScene(cmds scene.Commands) {
	a.geometry = scene.Icosphere(cmds.Mesh.Subdivisions)
	a.vertices = a.geometry.Flatten()

	// Normals equal positions on the unit sphere.
	mesh := rl.Mesh{
		VertexCount:   int32(len(a.geometry.Vertices)),
		TriangleCount: int32(len(a.geometry.Indices) / 3),
		Vertices:      &a.vertices[0],
		Normals:       &a.vertices[0],
		Indices:       &a.geometry.Indices[0],
	}
	rl.UploadMesh(&mesh, false)
	a.model = rl.LoadModelFromMesh(mesh)

	a.shader = rl.LoadShaderFromMemory(harmonicsVS, harmonicsFS)
	a.model.Materials.Shader = a.shader
	a.locHarmonics = rl.GetShaderLocation(a.shader, "harmonics")
	a.locViewPos = rl.GetShaderLocation(a.shader, "viewPos")

	ambient := cmds.Light.Ambient
	scale := min(cmds.Light.Brightness/1000, 1)
	setVec(a.shader, "ambient", []float32{ambient[0] * scale, ambient[1] * scale, ambient[2] * scale, ambient[3]}, rl.ShaderUniformVec4)
	setVec(a.shader, "lightPos", cmds.Light.Position[:], rl.ShaderUniformVec3)
	setVec(a.shader, "shadowBias", []float32{cmds.Light.ShadowBias}, rl.ShaderUniformFloat)

	a.post = rl.LoadShaderFromMemory("", postFS)
	a.locFocus = rl.GetShaderLocation(a.post, "focusDistance")
	a.locAperture = rl.GetShaderLocation(a.post, "aperture")
	a.locBloom = rl.GetShaderLocation(a.post, "bloomIntensity")
	a.locResolution = rl.GetShaderLocation(a.post, "resolution")
	a.bloom = 0
	if cmds.Camera.Bloom {
		a.bloom = cmds.Camera.BloomIntensity
	}

	a.target = rl.LoadRenderTexture(a.opts.Width, a.opts.Height)
	a.stars = scene.Starfield(a.opts.StarSeed, starCount, starRadius)
	a.placement = cmds.Placement
	a.camera = rl.Camera3D{
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       fovy,
		Projection: rl.CameraPerspective,
	}
	a.spawned = true

	a.log.Info("scene spawned",
		"vertices", len(a.geometry.Vertices),
		"subdivisions", cmds.Mesh.Subdivisions,
		"tonemapping", cmds.Camera.Tonemapping,
		"bloom", a.bloom,
	)
}

// Submit keeps the latest frame for Draw. The amplitude slice is owned by
// the frame and only read here.
func (a *App) Submit(f driver.Frame) {
	a.frame = f
	a.camera.Position = vec3(f.CameraPosition)
	a.camera.Target = vec3(f.LookTarget)
}

func (a *App) RequestExit() { a.exit = true }

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	if !a.spawned {
		rl.ClearBackground(ColBg)
		return
	}

	if len(a.frame.Amplitudes) > 0 {
		rl.SetShaderValueV(a.shader, a.locHarmonics, a.frame.Amplitudes, rl.ShaderUniformFloat, int32(len(a.frame.Amplitudes)))
	}
	pos := a.frame.CameraPosition
	rl.SetShaderValue(a.shader, a.locViewPos, pos[:], rl.ShaderUniformVec3)

	rl.BeginTextureMode(a.target)
	rl.ClearBackground(ColBg)
	rl.BeginMode3D(a.camera)
	for _, s := range a.stars {
		v := uint8(255 * s.Brightness)
		rl.DrawPoint3D(vec3(s.Position), rl.NewColor(v, v, v, 255))
	}
	rl.DrawModel(a.model, vec3(a.placement.Translation), a.placement.Scale, rl.White)
	rl.EndMode3D()
	rl.EndTextureMode()

	rl.SetShaderValue(a.post, a.locFocus, []float32{a.frame.FocusDistance}, rl.ShaderUniformFloat)
	rl.SetShaderValue(a.post, a.locAperture, []float32{a.frame.Aperture}, rl.ShaderUniformFloat)
	rl.SetShaderValue(a.post, a.locBloom, []float32{a.bloom}, rl.ShaderUniformFloat)
	rl.SetShaderValue(a.post, a.locResolution, []float32{float32(a.opts.Width), float32(a.opts.Height)}, rl.ShaderUniformVec2)

	rl.BeginShaderMode(a.post)
	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(a.target.Texture.Width), -float32(a.target.Texture.Height))
	rl.DrawTextureRec(a.target.Texture, src, rl.NewVector2(0, 0), rl.White)
	rl.EndShaderMode()
}

func (a *App) unload() {
	if !a.spawned {
		return
	}
	// The mesh buffers are Go-owned, so the model itself is not unloaded.
	rl.UnloadShader(a.post)
	rl.UnloadShader(a.shader)
	rl.UnloadRenderTexture(a.target)
}

func setVec(s rl.Shader, name string, v []float32, kind rl.ShaderUniformDataType) {
	rl.SetShaderValue(s, rl.GetShaderLocation(s, name), v, kind)
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return *(*rl.Vector3)(unsafe.Pointer(&v))
}
