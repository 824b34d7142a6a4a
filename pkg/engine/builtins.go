package engine

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/chazu/ogive/pkg/design"
	"github.com/chazu/ogive/pkg/profile"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms ogive Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: tangent-ogive -> tangent_ogive
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpShape wraps a profile.Shape so it can be returned from a shape
// builtin and consumed by `nosecone`.
type sexpShape struct {
	shape profile.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", s.shape.Kind())
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpStage wraps one profile.Stage of a conic.
type sexpStage struct {
	stage profile.Stage
}

func (s *sexpStage) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(stage :radius %g :length %g)", s.stage.Radius, s.stage.Length)
}
func (s *sexpStage) Type() *zygo.RegisteredType { return nil }

// sexpPartRef wraps a design.PartID so it can be passed between builtins.
type sexpPartRef struct {
	id   design.PartID
	name string // human-readable name for error messages
}

func (p *sexpPartRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(part %q)", p.name)
}
func (p *sexpPartRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a design.Vec3.
type sexpVec3 struct {
	vec design.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds parsed keyword and positional arguments.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword arguments from positional arguments.
// A keyword is followed by its value; anything else is positional.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (design.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return design.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

func toStage(s zygo.Sexp) (profile.Stage, error) {
	if st, ok := s.(*sexpStage); ok {
		return st.stage, nil
	}
	return profile.Stage{}, fmt.Errorf("expected stage, got %T (%s)", s, s.SexpString(nil))
}

func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// options reads the keyword arguments of one builtin into Go fields. The
// first failure sticks, and done reports any keyword nobody consumed so
// that a misspelt parameter is not silently ignored.
type options struct {
	fn   string
	kw   map[string]zygo.Sexp
	used map[string]bool
	err  error
}

func newOptions(fn string, kw map[string]zygo.Sexp) *options {
	return &options{fn: fn, kw: kw, used: make(map[string]bool)}
}

func (o *options) lookup(key string) (zygo.Sexp, bool) {
	v, ok := o.kw[key]
	if ok {
		o.used[key] = true
	}
	return v, ok && o.err == nil
}

func (o *options) fail(key string, err error) {
	if o.err == nil {
		o.err = fmt.Errorf("%s: %s: %w", o.fn, key, err)
	}
}

func (o *options) float(key string, dst *float64) {
	if v, ok := o.lookup(key); ok {
		f, err := toFloat64(v)
		if err != nil {
			o.fail(key, err)
			return
		}
		*dst = f
	}
}

func (o *options) int(key string, dst *int) {
	if v, ok := o.lookup(key); ok {
		n, err := toInt(v)
		if err != nil {
			o.fail(key, err)
			return
		}
		*dst = n
	}
}

func (o *options) bool(key string, dst *bool) {
	if v, ok := o.lookup(key); ok {
		b, err := toBool(v)
		if err != nil {
			o.fail(key, err)
			return
		}
		*dst = b
	}
}

func (o *options) vec3(key string, dst **design.Vec3) {
	if v, ok := o.lookup(key); ok {
		vec, err := toVec3(v)
		if err != nil {
			o.fail(key, err)
			return
		}
		*dst = &vec
	}
}

func (o *options) done() error {
	if o.err != nil {
		return o.err
	}
	for _, key := range slices.Sorted(maps.Keys(o.kw)) {
		if !o.used[key] {
			return fmt.Errorf("%s: unknown keyword :%s", o.fn, key)
		}
	}
	return nil
}

// shapeBuiltin registers a shape constructor. build starts from the
// default shape and applies the keyword arguments.
func shapeBuiltin(env *zygo.Zlisp, fn string, build func(o *options) profile.Shape) {
	env.AddFunction(strings.ReplaceAll(fn, "-", "_"), func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("%s: unexpected argument %s, parameters are keywords", fn, pa.positional[0].SexpString(nil))
		}
		o := newOptions(fn, pa.kw)
		s := build(o)
		if err := o.done(); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{shape: s}, nil
	})
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins registers the ogive DSL builtins into the zygomys
// environment. Parts are added to d as `nosecone` forms are evaluated.
func registerBuiltins(env *zygo.Zlisp, d *design.Design) {

	// (tangent-ogive :radius 1 :length 2 :sphere-radius 0.2 :sphere-rings 32
	//                :rings 32 :segments 32)
	shapeBuiltin(env, "tangent-ogive", func(o *options) profile.Shape {
		s := profile.DefaultTangentOgive()
		o.float("radius", &s.BaseRadius)
		o.float("length", &s.ApexLength)
		o.float("sphere-radius", &s.SphereRadius)
		o.int("sphere-rings", &s.SphereRings)
		o.int("rings", &s.OgiveRings)
		o.int("segments", &s.Segments)
		return s
	})

	// (secant-ogive :radius 1 :length 2 :ogive-radius 2.5 :rings 32 :segments 32)
	shapeBuiltin(env, "secant-ogive", func(o *options) profile.Shape {
		s := profile.DefaultSecantOgive()
		o.float("radius", &s.BaseRadius)
		o.float("length", &s.ApexLength)
		o.float("ogive-radius", &s.OgiveRadius)
		o.int("rings", &s.OgiveRings)
		o.int("segments", &s.Segments)
		return s
	})

	// (prolate-hemispheroid :radius 1 :length 2 :rings 32 :smooth-tip true :segments 32)
	shapeBuiltin(env, "prolate-hemispheroid", func(o *options) profile.Shape {
		s := profile.DefaultProlateHemispheroid()
		o.float("radius", &s.Radius)
		o.float("length", &s.Length)
		o.int("rings", &s.Rings)
		o.bool("smooth-tip", &s.SmoothTip)
		o.int("segments", &s.Segments)
		return s
	})

	// (parabolic-cone :radius 1 :length 2 :k 0.5 :rings 32 :segments 32)
	shapeBuiltin(env, "parabolic-cone", func(o *options) profile.Shape {
		s := profile.DefaultParabolicCone()
		o.float("radius", &s.Radius)
		o.float("length", &s.Length)
		o.float("k", &s.K)
		o.int("rings", &s.Rings)
		o.int("segments", &s.Segments)
		return s
	})

	// (power-series-cone :radius 1 :length 2 :n 0.5 :rings 32 :segments 32)
	shapeBuiltin(env, "power-series-cone", func(o *options) profile.Shape {
		s := profile.DefaultPowerSeriesCone()
		o.float("radius", &s.Radius)
		o.float("length", &s.Length)
		o.float("n", &s.N)
		o.int("rings", &s.Rings)
		o.int("segments", &s.Segments)
		return s
	})

	// (haack-series-cone :radius 1 :length 2 :c 0.5 :rings 32 :segments 32)
	shapeBuiltin(env, "haack-series-cone", func(o *options) profile.Shape {
		s := profile.DefaultHaackSeriesCone()
		o.float("radius", &s.Radius)
		o.float("length", &s.Length)
		o.float("c", &s.C)
		o.int("rings", &s.Rings)
		o.int("segments", &s.Segments)
		return s
	})

	// (blunted-cone :radius 1 :length 2 :sphere-radius 0.2 :sphere-rings 32 :segments 32)
	shapeBuiltin(env, "blunted-cone", func(o *options) profile.Shape {
		s := profile.DefaultBluntedCone()
		o.float("radius", &s.BaseRadius)
		o.float("length", &s.ApexLength)
		o.float("sphere-radius", &s.SphereRadius)
		o.int("sphere-rings", &s.SphereRings)
		o.int("segments", &s.Segments)
		return s
	})

	// (conic :length 3 :stages (list (stage :radius 0.5 :length 1) ...)
	//        :stage-rings 1 :sphere-radius 0 :sphere-rings 32 :segments 32)
	shapeBuiltin(env, "conic", func(o *options) profile.Shape {
		s := profile.DefaultConic()
		o.float("length", &s.ApexLength)
		if v, ok := o.lookup("stages"); ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				o.fail("stages", err)
				return s
			}
			stages := make([]profile.Stage, 0, len(items))
			for i, item := range items {
				st, err := toStage(item)
				if err != nil {
					o.fail("stages", fmt.Errorf("entry %d: %w", i, err))
					return s
				}
				stages = append(stages, st)
			}
			s.Stages = stages
		}
		o.int("stage-rings", &s.StageRings)
		o.float("sphere-radius", &s.SphereRadius)
		o.int("sphere-rings", &s.SphereRings)
		o.int("segments", &s.Segments)
		return s
	})

	// (stage :radius 0.5 :length 1)
	env.AddFunction("stage", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		o := newOptions("stage", parseArgs(args).kw)
		var st profile.Stage
		o.float("radius", &st.Radius)
		o.float("length", &st.Length)
		if err := o.done(); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpStage{stage: st}, nil
	})

	// (vec3 x y z)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: design.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// (nosecone "name" shape :rotation (vec3 ...) :at (vec3 ...))
	// shape may also be a (part "other") reference, which reuses its shape.
	env.AddFunction("nosecone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("nosecone requires a name and a shape expression")
		}

		partName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("nosecone: name: %w", err)
		}
		if partName == "" {
			return zygo.SexpNull, fmt.Errorf("nosecone: name must not be empty")
		}
		if d.Lookup(partName) != nil {
			return zygo.SexpNull, fmt.Errorf("nosecone: duplicate part name %q", partName)
		}

		var shape profile.Shape
		switch body := pa.positional[1].(type) {
		case *sexpShape:
			shape = body.shape
		case *sexpPartRef:
			shape = d.Get(body.id).Shape
		default:
			return zygo.SexpNull, fmt.Errorf("nosecone: expected shape expression, got %T (%s)",
				body, body.SexpString(nil))
		}

		p := &design.Part{
			ID:    design.NewPartID("nosecone/" + partName),
			Name:  partName,
			Shape: shape,
		}
		o := newOptions("nosecone", pa.kw)
		o.vec3("rotation", &p.Rotation)
		o.vec3("at", &p.Translation)
		if err := o.done(); err != nil {
			return zygo.SexpNull, err
		}
		d.AddPart(p)

		return &sexpPartRef{id: p.ID, name: partName}, nil
	})

	// (part "name") returns a reference to an already defined nose cone.
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}

		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}

		p := d.Lookup(partName)
		if p == nil {
			return zygo.SexpNull, fmt.Errorf("part: no part named %q", partName)
		}

		return &sexpPartRef{id: p.ID, name: partName}, nil
	})
}
