package model

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestProductPatchApply(t *testing.T) {
	base := Product{
		ID:          "microscopio-x",
		Title:       "Microscopio X",
		Description: "Lab microscope",
		Image:       "/x.png",
		Features:    []string{"A", "B"},
	}

	tests := []struct {
		name  string
		patch ProductPatch
		want  Product
	}{
		{
			name:  "empty patch changes nothing",
			patch: ProductPatch{},
			want:  base,
		},
		{
			name:  "single field merge",
			patch: ProductPatch{Features: &[]string{"A", "B", "C"}},
			want: Product{
				ID:          "microscopio-x",
				Title:       "Microscopio X",
				Description: "Lab microscope",
				Image:       "/x.png",
				Features:    []string{"A", "B", "C"},
			},
		},
		{
			name:  "explicit clear to empty",
			patch: ProductPatch{Description: strPtr("")},
			want: Product{
				ID:       "microscopio-x",
				Title:    "Microscopio X",
				Image:    "/x.png",
				Features: []string{"A", "B"},
			},
		},
		{
			name: "multiple fields",
			patch: ProductPatch{
				Title: strPtr("Microscopio XL"),
				Image: strPtr("/xl.png"),
			},
			want: Product{
				ID:          "microscopio-x",
				Title:       "Microscopio XL",
				Description: "Lab microscope",
				Image:       "/xl.png",
				Features:    []string{"A", "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(base)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductPatchDoesNotMutateOriginal(t *testing.T) {
	base := Product{ID: "x", Title: "Original"}
	_ = ProductPatch{Title: strPtr("Changed")}.Apply(base)

	if base.Title != "Original" {
		t.Errorf("Apply mutated its argument: %+v", base)
	}
}

func TestProductValidate(t *testing.T) {
	if err := (Product{Title: "Ok"}).Validate(); err != nil {
		t.Errorf("expected valid product, got %v", err)
	}
	if err := (Product{Description: "no title"}).Validate(); err == nil {
		t.Error("expected error for missing title")
	}
}

func TestProductIdentity(t *testing.T) {
	p := Product{Title: "Widget"}
	if p.ItemID() != "" {
		t.Errorf("expected empty ID, got %q", p.ItemID())
	}

	p2 := p.WithID("widget")
	if p2.ItemID() != "widget" {
		t.Errorf("expected widget, got %q", p2.ItemID())
	}
	if p.ItemID() != "" {
		t.Error("WithID mutated its receiver")
	}
	if p.SlugSource() != "Widget" {
		t.Errorf("expected slug source Widget, got %q", p.SlugSource())
	}
}
