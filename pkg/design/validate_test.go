package design

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/ogive/pkg/profile"
)

func hasMessage(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateCleanDesign(t *testing.T) {
	d := New()
	d.AddPart(nosecone("a", profile.DefaultTangentOgive()))
	b := nosecone("b", profile.DefaultHaackSeriesCone())
	b.Rotation = &Vec3{X: 90}
	b.Translation = &Vec3{Y: 3}
	d.AddPart(b)

	if errs := Validate(d); len(errs) != 0 {
		t.Errorf("Validate() = %v, want none", errs)
	}
	if !ValidateAll(d).OK() {
		t.Error("ValidateAll().OK() = false for a clean design")
	}
}

func TestValidateEmptyDesign(t *testing.T) {
	if errs := Validate(New()); len(errs) != 0 {
		t.Errorf("Validate(empty) = %v, want none", errs)
	}
}

func TestValidateReferences(t *testing.T) {
	d := New()
	d.AddPart(nosecone("a", profile.DefaultConic()))
	ghost := NewPartID("ghost")
	d.Order = append(d.Order, ghost, d.Order[0])
	d.NameIndex["phantom"] = ghost

	stray := nosecone("stray", profile.DefaultConic())
	d.Parts[stray.ID] = stray

	errs := Validate(d)
	for _, want := range []string{
		"order references missing part",
		"listed more than once",
		"not in the definition order",
		`name "phantom" references missing part`,
	} {
		if !hasMessage(errs, want) {
			t.Errorf("missing finding %q in %v", want, errs)
		}
	}
}

func TestValidateNames(t *testing.T) {
	d := New()
	d.AddPart(&Part{ID: NewPartID("x"), Shape: profile.DefaultConic()})
	d.AddPart(&Part{ID: NewPartID("one"), Name: "dup", Shape: profile.DefaultConic()})
	d.AddPart(&Part{ID: NewPartID("two"), Name: "dup", Shape: profile.DefaultConic()})

	errs := validateNames(d)
	if len(errs) != 2 {
		t.Fatalf("validateNames() = %v, want 2 findings", errs)
	}
	if !hasMessage(errs, "no name") || !hasMessage(errs, `duplicate part name "dup"`) {
		t.Errorf("unexpected findings %v", errs)
	}
}

func TestValidateShapes(t *testing.T) {
	bad := profile.DefaultParabolicCone()
	bad.K = 2

	big := profile.DefaultBluntedCone()
	big.SphereRadius = 5

	d := New()
	d.AddPart(nosecone("missing", nil))
	d.AddPart(nosecone("bad", bad))
	d.AddPart(nosecone("big", big))

	result := ValidateAll(d)
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %v, want 2", result.Errors)
	}
	if !hasMessage(result.Errors, "no shape") || !hasMessage(result.Errors, "bad: K 2") {
		t.Errorf("unexpected errors %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !hasMessage(result.Warnings, "big: sphere radius 5 -> 0.999") {
		t.Errorf("warnings = %v, want the sphere clamp", result.Warnings)
	}
	for _, w := range result.Warnings {
		if w.Severity != SeverityWarning {
			t.Errorf("warning %v has severity %s", w, w.Severity)
		}
	}
}

func TestValidatePlacement(t *testing.T) {
	p := nosecone("p", profile.DefaultConic())
	p.Rotation = &Vec3{X: math.NaN()}
	p.Translation = &Vec3{Z: math.Inf(-1)}
	d := New()
	d.AddPart(p)

	errs := Validate(d)
	if !hasMessage(errs, "rotation") || !hasMessage(errs, "translation") {
		t.Errorf("Validate() = %v, want rotation and translation findings", errs)
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Message: "boom", Severity: SeverityError}
	if e.Error() != "[error] boom" {
		t.Errorf("Error() = %q", e.Error())
	}
	id := NewPartID("p")
	e = ValidationError{PartID: id, Message: "hmm", Severity: SeverityWarning}
	if want := "[warning] part " + id.Short() + ": hmm"; e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
	if ValidationSeverity(7).String() != "ValidationSeverity(7)" {
		t.Errorf("unknown severity String() = %q", ValidationSeverity(7).String())
	}
}
