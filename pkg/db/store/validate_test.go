package store

import (
	"errors"
	"testing"

	"github.com/mwantia/foodgram/pkg/db/models"
)

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	v := newValidator()

	tests := []struct {
		name      string
		value     any
		fields    []string
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid tag",
			value: &models.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		},
		{
			name:  "named color",
			value: &models.Tag{Name: "Breakfast", Color: "orange", Slug: "breakfast"},
		},
		{
			name:      "color too long",
			value:     &models.Tag{Name: "Breakfast", Color: "#E26C2D-dark", Slug: "breakfast"},
			wantField: "Color",
			wantMsg:   "must be at most 10 characters",
		},
		{
			name:      "blank color",
			value:     &models.Tag{Name: "Breakfast", Slug: "breakfast"},
			wantField: "Color",
			wantMsg:   "must not be empty",
		},
		{
			name:      "slug with spaces",
			value:     &models.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "early breakfast"},
			wantField: "Slug",
			wantMsg:   "may only contain letters, digits, hyphens and underscores",
		},
		{
			name:      "tag name too long",
			value:     &models.Tag{Name: string(make([]byte, 101)), Color: "#E26C2D", Slug: "x"},
			wantField: "Name",
			wantMsg:   "must be at most 100 characters",
		},
		{
			name:      "amount below minimum",
			value:     &models.IngredientForRecipe{IngredientID: 1, Amount: 0},
			wantField: "Amount",
			wantMsg:   "minimum ingredient amount in a recipe is 1",
		},
		{
			name:      "missing ingredient",
			value:     &models.IngredientForRecipe{Amount: 1},
			wantField: "IngredientID",
			wantMsg:   "must not be empty",
		},
		{
			name: "nested amount below minimum",
			value: &models.Recipe{
				AuthorID:    1,
				Name:        "Pancakes",
				Text:        "text",
				CookingTime: 5,
				Ingredients: []models.IngredientForRecipe{
					{IngredientID: 1, Amount: 2},
					{IngredientID: 2, Amount: 0},
				},
			},
			wantField: "Ingredients[1].Amount",
			wantMsg:   "minimum ingredient amount in a recipe is 1",
		},
		{
			name:   "partial ignores author",
			value:  &models.Recipe{Name: "Pancakes", Text: "text", CookingTime: 5},
			fields: []string{"Name", "Image", "Text", "CookingTime"},
		},
		{
			name:      "partial checks cooking time",
			value:     &models.Recipe{Name: "Pancakes", Text: "text"},
			fields:    []string{"Name", "Image", "Text", "CookingTime"},
			wantField: "CookingTime",
			wantMsg:   "minimum cooking time is 1 minute",
		},
		{
			name:      "invalid email",
			value:     &models.User{Email: "avery", Username: "avery"},
			wantField: "Email",
			wantMsg:   "must be a valid email address",
		},
	}

	for _, tt := range tests {
		err := validateStruct(v, "entity", tt.value, tt.fields...)
		if tt.wantField == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tt.name, err)
			}
			continue
		}

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: error = %v, want *ValidationError", tt.name, err)
		}
		if ve.Field != tt.wantField {
			t.Fatalf("%s: Field = %q, want %q", tt.name, ve.Field, tt.wantField)
		}
		if ve.Message != tt.wantMsg {
			t.Fatalf("%s: Message = %q, want %q", tt.name, ve.Message, tt.wantMsg)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: error does not match ErrValidation", tt.name)
		}
	}
}
