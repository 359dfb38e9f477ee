package classify

import (
	"reflect"
	"testing"

	"github.com/estudia-app/estudia/domains/explanation"
)

func TestConcepts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single math keyword", "Explica la Derivada de x^2", []string{"derivada"}},
		{"mixed subjects keep table order", "la fuerza en una ecuación con energía", []string{"ecuación", "fuerza", "energía"}},
		{"chemistry", "el pH de la molécula", []string{"molécula", "ph"}},
		{"no keywords", "historia de la revolución francesa", []string{}},
		{"case insensitive", "LA INTEGRAL Y EL VECTOR", []string{"integral", "vector"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Concepts(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Concepts(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		text string
		want explanation.Difficulty
	}{
		{"Explica la Derivada de x^2", explanation.DifficultyAdvanced},
		{"resuelve la integral definida", explanation.DifficultyAdvanced},
		// "ecuación diferencial" contiene "ecuación" (intermedio) pero la
		// tabla avanzada gana.
		{"una ecuación diferencial de primer orden", explanation.DifficultyAdvanced},
		{"resuelve el sistema de ecuaciones", explanation.DifficultyIntermediate},
		{"grafica la función lineal", explanation.DifficultyIntermediate},
		{"suma de fracciones", explanation.DifficultyBeginner},
		{"", explanation.DifficultyBeginner},
	}

	for _, tt := range tests {
		if got := Difficulty(tt.text); got != tt.want {
			t.Errorf("Difficulty(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
