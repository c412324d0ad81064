package service

// DefaultSuggestion se devuelve cuando la etiqueta no está en la tabla.
const DefaultSuggestion = "Consult a healthcare professional for advice."

// suggestionTable asocia etiquetas exactas del modelo con recomendaciones.
// Hay conceptos repetidos bajo etiquetas distintas (Cold/Common Cold, Migraine/Headache).
var suggestionTable = map[string][]string{
	"Flu":              {"Drink warm fluids", "Take rest", "Consult doctor if symptoms worsen", "Take over-the-counter flu medicine"},
	"Cold":             {"Stay hydrated", "Take Vitamin C", "Gargle with salt water", "Use nasal spray"},
	"Migraine":         {"Rest in a dark, quiet room", "Apply cold compress to forehead", "Stay hydrated", "Avoid bright lights"},
	"Food Poisoning":   {"Drink plenty of fluids", "Eat bland foods", "Avoid dairy and caffeine", "Consult doctor if vomiting persists"},
	"Pneumonia":        {"Consult a doctor immediately", "Get plenty of rest", "Use a humidifier", "Take prescribed medications"},
	"Fatigue":          {"Maintain a regular sleep schedule", "Stay active but don't overdo it", "Eat balanced meals", "Reduce stress"},
	"Healthy":          {"Maintain your healthy lifestyle!", "Continue balanced diet", "Exercise regularly", "Stay hydrated"},
	"Severe Infection": {"URGENT: Consult a doctor immediately", "Monitor temperature", "Rest completely", "Seek hospital care if needed"},
	"Common Cold":      {"Rest well", "Hydrate often", "Warm drinks", "Humidifier use"},
	"Headache":         {"Rest", "Stay hydrated", "Avoid screens", "Stress management"},
}

// SuggestionsFor devuelve una copia de las recomendaciones para disease.
// La comparación es exacta y distingue mayúsculas.
func SuggestionsFor(disease string) []string {
	list, ok := suggestionTable[disease]
	if !ok {
		return []string{DefaultSuggestion}
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
