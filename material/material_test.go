package material

import (
	"testing"

	"github.com/solstice-render/pathtrace/rng"
	"github.com/solstice-render/pathtrace/types"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New(Diffuse)
	b := New(Metal)
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct ids; both got %d", a.ID())
	}
	if Lookup(a.ID()) != a {
		t.Fatalf("Lookup(%d) did not return the material that registered it", a.ID())
	}
}

func TestLookupUnknownID(t *testing.T) {
	if m := Lookup(0xFFFFFFFF); m != nil {
		t.Fatalf("Lookup() of an unregistered id = %v; want nil", m)
	}
}

func TestWillUseIndirectLight(t *testing.T) {
	light := New(Light)
	diffuse := New(Diffuse)
	normal := types.Vec3{0, 1, 0}
	lit := types.Vec3{0, 1, 0}
	unlit := types.Vec3{1, 0, 0}
	if WillUseIndirectLight(light, lit, normal) {
		t.Fatal("Light should terminate the path, not recurse into indirect light")
	}
	if !WillUseIndirectLight(diffuse, lit, normal) {
		t.Fatal("Diffuse should recurse when the bounce direction carries light toward the surface")
	}
	if WillUseIndirectLight(diffuse, unlit, normal) {
		t.Fatal("Diffuse should not recurse when the bounce direction is below the surface")
	}

	metal := New(Metal)
	metal.Roughness = 0.1
	if !WillUseIndirectLight(metal, unlit, normal) {
		t.Fatal("a smooth metal should always recurse regardless of the bounce direction")
	}
	metal.Roughness = 1
	if WillUseIndirectLight(metal, unlit, normal) {
		t.Fatal("a fully rough metal should only recurse when the bounce direction carries light toward the surface")
	}
}

func TestShadeColorPrefersTexture(t *testing.T) {
	m := New(Diffuse)
	m.Color = types.Vec3{1, 0, 0}
	m.Texture = &Texture{Width: 1, Height: 1, Data: []types.Vec3{{0, 1, 0}}}
	if got := ShadeColor(m, types.Vec2{0.5, 0.5}); got != (types.Vec3{0, 1, 0}) {
		t.Fatalf("ShadeColor() = %v; want texture color", got)
	}
}

func TestMirrorReflection(t *testing.T) {
	m := New(Mirror)
	normal := types.Vec3{0, 1, 0}
	incoming := types.Vec3{1, -1, 0}.Normalize()
	got := Reflection(m, normal, incoming, rng.New(1), rng.NewConeTable(1))
	want := incoming.Reflect(normal)
	if got != want {
		t.Fatalf("mirror Reflection() = %v; want exact reflect formula %v", got, want)
	}
}

func TestGlassReflectsUnderTotalInternalReflection(t *testing.T) {
	m := New(Glass)
	normal := types.Vec3{0, 1, 0}
	// A grazing incoming ray from inside the denser medium should fail
	// Snell's law and fall back to a pure reflection.
	incoming := types.Vec3{1, 0.02, 0}.Normalize()
	got := Reflection(m, normal, incoming, rng.New(1), rng.NewConeTable(1))
	want := incoming.Reflect(normal)
	if math32AbsV(got.Sub(want)) > 1e-4 {
		t.Fatalf("glass Reflection() under TIR = %v; want reflect fallback %v", got, want)
	}
}

func TestSampleLightScalesByIntensity(t *testing.T) {
	m := New(Light)
	m.Color = types.Vec3{1, 1, 1}
	m.Intensity = 3
	got := Sample(m, SampleInput{}, rng.New(1))
	if got != (types.Vec3{3, 3, 3}) {
		t.Fatalf("Sample() = %v; want {3,3,3}", got)
	}
}

func TestSampleDiffuseIsPurelyIndirectAndCosineWeighted(t *testing.T) {
	m := New(Diffuse)
	m.Color = types.Vec3{1, 1, 1}

	dark := Sample(m, SampleInput{
		Normal:     types.Vec3{0, 1, 0},
		ReflectDir: types.Vec3{0, 1, 0},
		Indirect:   types.Vec3{},
	}, rng.New(1))
	if dark != (types.Vec3{}) {
		t.Fatalf("Sample() under a black sky = %v; want {0,0,0}, diffuse has no standalone emissive term", dark)
	}

	lit := Sample(m, SampleInput{
		Normal:     types.Vec3{0, 1, 0},
		ReflectDir: types.Vec3{0, 1, 0},
		Indirect:   types.Vec3{1, 1, 1},
	}, rng.New(1))
	if lit != (types.Vec3{1, 1, 1}) {
		t.Fatalf("Sample() straight up = %v; want {1,1,1} (cos(0) * indirect * diffuse)", lit)
	}

	grazing := Sample(m, SampleInput{
		Normal:     types.Vec3{0, 1, 0},
		ReflectDir: types.Vec3{1, 0, 0},
		Indirect:   types.Vec3{1, 1, 1},
	}, rng.New(1))
	if grazing != (types.Vec3{}) {
		t.Fatalf("Sample() at grazing incidence = %v; want {0,0,0}, cosine weight should zero it out", grazing)
	}
}

func TestSampleFogScattersProbabilisticallyAtDepthZero(t *testing.T) {
	m := New(Fog)
	m.Color = types.Vec3{1, 0, 0}
	m.Density = 1e9

	got := Sample(m, SampleInput{
		Depth:            0,
		IndirectDistance: 10,
		Indirect:         types.Vec3{0, 1, 0},
	}, rng.New(1))
	if got != m.Color {
		t.Fatalf("Sample() at depth 0 with a huge density = %v; want the diffuse scatter color %v", got, m.Color)
	}

	passthrough := Sample(m, SampleInput{
		Depth:    1,
		Indirect: types.Vec3{0, 1, 0},
	}, rng.New(1))
	if passthrough != (types.Vec3{0, 1, 0}) {
		t.Fatalf("Sample() below depth 0 = %v; want pure indirect pass-through", passthrough)
	}
}

func TestTextureSampleWraps(t *testing.T) {
	tex := &Texture{Width: 2, Height: 1, Data: []types.Vec3{{1, 0, 0}, {0, 1, 0}}}
	got := tex.Sample(types.Vec2{1.5, 0})
	if got != (types.Vec3{0, 1, 0}) {
		t.Fatalf("Sample() with wraparound u = %v; want second texel", got)
	}
}

func math32AbsV(v types.Vec3) float32 {
	s := v.Dot(v)
	if s < 0 {
		s = -s
	}
	return s
}
