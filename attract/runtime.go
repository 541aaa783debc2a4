// Package attract runs the scripted idle mode: when nobody has touched the
// app for a while, a Tengo script keeps the screen alive by spawning shapes
// and the occasional vortex. The script is embedded, replaceable from disk,
// and keeps its own state map between steps.
package attract

import (
	_ "embed"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

//go:embed scripts/attract.tengo
var DefaultScript []byte

// Engine is the surface a script drives. All callbacks are required.
type Engine struct {
	Size       func() (w, h float64)
	Spawn      func(x, y, size float64, push bool)
	Vortex     func(x, y float64)
	Population func() int
}

// Runtime holds a compiled attract script. The script must define
// step(engine, state, dt); state is a mutable map that survives across
// steps, so scripts keep their own clocks and cursors in it.
type Runtime struct {
	engine   Engine
	compiled *tengo.Compiled
	state    *tengo.Map
}

const dispatch = "\nstep(__engine, __state, __dt)\n"

// New compiles src, or the embedded default script when src is empty.
func New(engine Engine, src []byte) (*Runtime, error) {
	r := &Runtime{
		engine: engine,
		state:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if err := r.compile(src); err != nil {
		return nil, err
	}
	return r, nil
}

// SetScript swaps the script, keeping the accumulated state. Used by the
// hot-reload path; a compile error leaves the old script running.
func (r *Runtime) SetScript(src []byte) error {
	return r.compile(src)
}

// Step runs one script step. dt is the span since the previous step in
// seconds.
func (r *Runtime) Step(dt float64) error {
	if err := r.compiled.Set("__dt", &tengo.Float{Value: dt}); err != nil {
		return err
	}
	return r.compiled.Run()
}

// Reset drops the script state, so the next idle period starts fresh.
func (r *Runtime) Reset() {
	r.state.Value = map[string]tengo.Object{}
}

func (r *Runtime) compile(src []byte) error {
	if len(src) == 0 {
		src = DefaultScript
	}
	body := make([]byte, 0, len(src)+len(dispatch))
	body = append(body, src...)
	body = append(body, dispatch...)

	script := tengo.NewScript(body)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	if err := script.Add("__engine", r.engineObject()); err != nil {
		return fmt.Errorf("attract: bind engine: %w", err)
	}
	if err := script.Add("__state", r.state); err != nil {
		return fmt.Errorf("attract: bind state: %w", err)
	}
	if err := script.Add("__dt", &tengo.Float{}); err != nil {
		return fmt.Errorf("attract: bind dt: %w", err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("attract: compile script: %w", err)
	}
	r.compiled = compiled
	return nil
}

func (r *Runtime) engineObject() tengo.Object {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"width": &tengo.UserFunction{Name: "width", Value: func(args ...tengo.Object) (tengo.Object, error) {
			w, _ := r.engine.Size()
			return &tengo.Float{Value: w}, nil
		}},
		"height": &tengo.UserFunction{Name: "height", Value: func(args ...tengo.Object) (tengo.Object, error) {
			_, h := r.engine.Size()
			return &tengo.Float{Value: h}, nil
		}},
		"population": &tengo.UserFunction{Name: "population", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Int{Value: int64(r.engine.Population())}, nil
		}},
		"spawn": &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 3 || len(args) > 4 {
				return nil, tengo.ErrWrongNumArguments
			}
			x, err := floatArg(args[0], "x")
			if err != nil {
				return nil, err
			}
			y, err := floatArg(args[1], "y")
			if err != nil {
				return nil, err
			}
			size, err := floatArg(args[2], "size")
			if err != nil {
				return nil, err
			}
			push := false
			if len(args) == 4 {
				push = !args[3].IsFalsy()
			}
			r.engine.Spawn(x, y, size, push)
			return tengo.UndefinedValue, nil
		}},
		"vortex": &tengo.UserFunction{Name: "vortex", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			x, err := floatArg(args[0], "x")
			if err != nil {
				return nil, err
			}
			y, err := floatArg(args[1], "y")
			if err != nil {
				return nil, err
			}
			r.engine.Vortex(x, y)
			return tengo.UndefinedValue, nil
		}},
	}}
}

func floatArg(o tengo.Object, name string) (float64, error) {
	f, ok := tengo.ToFloat64(o)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: name, Expected: "number", Found: o.TypeName()}
	}
	return f, nil
}
