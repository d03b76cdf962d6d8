// Package controls provides bindable control models: the state and input
// behavior of common controls, without rendering.
//
// Every control implements [bindings.Adapter] and [bindings.Node]. Values set
// through DisplayValue are programmatic and never reach edit observers;
// only the user entry points (Drag, Toggle, Type, Select, Increment and
// Decrement) do, and only while the control is enabled.
//
// Controls that animate (Slider, Progress, Switch) run their transitions on
// an [animation.Scheduler]. Leave Scheduler nil to use
// animation.DefaultScheduler, which the host steps once per frame.
//
// Controls are plain structs configured by their exported fields:
//
//	volume := &controls.Slider{Name: "volume", Min: 0, Max: 1}
//	form := &controls.Panel{Kids: []bindings.Node{volume, muted}}
//	coord.BindTree(form, sheet, prefs)
package controls
