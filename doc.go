// Package surprise is a small retained-mode scene graph for [Ebitengine] that
// hosts an interactive birthday-surprise scene: gift boxes and hidden easter
// eggs placed in a 3D room, each revealing a message, a photo, a song or a
// quiz when clicked.
//
// The root package provides the engine pieces; the behavior lives in
// subpackages:
//
//   - reveal: the one-shot discovery state machine and per-frame motion of
//     gift boxes and easter eggs
//   - quiz: single-answer multiple choice sessions
//   - media: timed tracks and looping playlists over pluggable audio backends
//   - content: the YAML table of boxes, eggs and their payloads
//   - stage: composition of all of the above into a Scene
//
// # Quick start
//
//	scene := surprise.NewScene()
//	// ... add nodes ...
//	surprise.Run(scene, surprise.RunConfig{
//		Title: "Feliz cumpleaños", Width: 1280, Height: 720,
//	})
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
// Children are drawn in ZIndex order; for nodes placed in the 3D room,
// [Projector] maps world positions to the screen and [DepthOrder] turns depth
// into a ZIndex.
//
// Create nodes with typed constructors: [NewContainer], [NewShape],
// [NewImage], [NewText] and [NewEmitter]. An emitter node releases bursts of
// additive glows that fall and fade over their lifetime.
//
// # Input
//
// Set Interactable on a node (and each ancestor) to make it hit-testable.
// Per-node callbacks (OnPointerEnter, OnPointerLeave, OnClick) and scene-level
// handlers ([Scene.OnClick] and friends) fire from [Scene.Update]. Tests drive
// the same path with [Scene.InjectClick] and [Scene.InjectHover].
//
// Tweens use [gween]; [LightLayer] draws additive glows that follow nodes.
//
// # Scripted replay
//
// [ParseScript] reads a YAML or JSON list of click, hover, wait, screenshot
// and quit steps. Attached with [Scene.SetScript], it feeds the same injection
// queue every frame, and screenshots land in [Scene.ScreenshotDir]:
//
//	steps:
//	  - action: click
//	    x: 640
//	    y: 420
//	  - action: wait
//	    frames: 30
//	  - action: screenshot
//	    label: opened
//	  - action: quit
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package surprise
