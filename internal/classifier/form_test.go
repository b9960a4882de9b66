package classifier_test

import (
	"context"
	"testing"

	"github.com/jonesrussell/formsight/internal/classifier"
	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/logger"
)

func field(name, id, placeholder string) domain.FieldDescriptor {
	return domain.FieldDescriptor{
		Name:        name,
		ID:          id,
		Placeholder: placeholder,
		Tag:         domain.FieldTagInput,
	}
}

func TestFormAnalyzer_Score(t *testing.T) {
	a := classifier.NewFormAnalyzer(logger.NewNop())

	tests := []struct {
		name    string
		fields  []domain.FieldDescriptor
		hasForm bool
		want    int
	}{
		{
			name:    "no fields no container",
			fields:  nil,
			hasForm: false,
			want:    0,
		},
		{
			name:    "empty container still counts",
			fields:  nil,
			hasForm: true,
			want:    20,
		},
		{
			name: "two loose fields below loose threshold",
			fields: []domain.FieldDescriptor{
				field("email", "", ""),
				field("phone", "", ""),
			},
			hasForm: false,
			want:    0,
		},
		{
			name: "three loose unmatched fields",
			fields: []domain.FieldDescriptor{
				field("email", "", ""),
				field("phone", "", ""),
				field("city", "", ""),
			},
			hasForm: false,
			want:    10,
		},
		{
			name: "five matched fields in a form",
			fields: []domain.FieldDescriptor{
				field("business_name", "", ""),
				field("company_type", "", ""),
				field("entity_id", "", ""),
				field("owner_name", "", ""),
				field("register_date", "", ""),
			},
			hasForm: true,
			want:    60, // 20 container + 20 (m>=3) + 20 (m>=5)
		},
		{
			name: "three matched fields hit only first tier",
			fields: []domain.FieldDescriptor{
				field("business_name", "", ""),
				field("company_type", "", ""),
				field("owner_email", "", ""),
			},
			hasForm: true,
			want:    40,
		},
		{
			name: "field matching on id and placeholder",
			fields: []domain.FieldDescriptor{
				field("", "entityName", ""),
				field("", "", "Registered address"),
				field("", "f42", "Your company"),
			},
			hasForm: true,
			want:    40,
		},
		{
			name: "field contributes once despite multiple attribute hits",
			fields: []domain.FieldDescriptor{
				field("business_name", "company_type", "Entity owner address"),
				field("email", "", ""),
			},
			hasForm: true,
			want:    20,
		},
		{
			name: "matching is case insensitive",
			fields: []domain.FieldDescriptor{
				field("BUSINESS_NAME", "", ""),
				field("", "OwnerName", ""),
				field("", "", "Company Type"),
			},
			hasForm: false,
			want:    30, // 10 loose + 20 (m>=3)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Score(context.Background(), tt.fields, tt.hasForm)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}
