// Package llm turns raw model output into typed results. Nothing here talks to
// a provider; every function takes the text a model returned.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

var (
	// ErrEmptyResponse is returned when the model produced no usable text
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrInvalidResponse wraps every shape or value problem in model output
	ErrInvalidResponse = errors.New("invalid model response")
)

// RecipeCount is how many suggestions a recipe response carries
const RecipeCount = 3

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidResponse, fmt.Sprintf(format, args...))
}

// ExtractJSON returns the JSON object or array embedded in s, handling code
// fences and text around it. Each opening bracket is tried in order and the
// first one that starts a complete JSON value wins, so bracketed notes before
// or after the payload are skipped. When none does, the span from the first
// opener to its last closer is returned so the caller can report why it is
// malformed; "" means nothing looks like JSON.
func ExtractJSON(s string) string {
	first := ""
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return s[i : i+int(dec.InputOffset())]
		}
		if first == "" {
			closer := byte('}')
			if s[i] == '[' {
				closer = ']'
			}
			if end := strings.LastIndexByte(s, closer); end > i {
				first = s[i : end+1]
			}
		}
	}
	return first
}

func decode(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}
	raw := ExtractJSON(text)
	if raw == "" {
		return nil, invalid("no JSON found")
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, invalid("malformed JSON: %v", err)
	}
	return v, nil
}

// ParseMacroResults accepts a JSON array of rows shaped like
// {food, amount_g, kcal, protein_g, carbs_g, fat_g, fiber_g}, a single such
// row, or a single {food_name, amount, calories, protein, carbs, fat, fiber}
// object. A missing or non-numeric value fails the whole response.
func ParseMacroResults(text string) ([]domain.MacroResult, error) {
	v, err := decode(text)
	if err != nil {
		return nil, err
	}

	var rows []any
	switch t := v.(type) {
	case []any:
		rows = t
	case map[string]any:
		if items, ok := t["items"].([]any); ok {
			rows = items
		} else {
			rows = []any{t}
		}
	default:
		return nil, invalid("expected an object or array")
	}
	if len(rows) == 0 {
		return nil, invalid("no food items")
	}

	out := make([]domain.MacroResult, 0, len(rows))
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, invalid("item %d is not an object", i)
		}
		var r domain.MacroResult
		if _, kimi := obj["food_name"]; kimi {
			r, err = parseCompactRow(obj)
		} else {
			r, err = parseRow(obj)
		}
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func parseRow(obj map[string]any) (domain.MacroResult, error) {
	var r domain.MacroResult
	var err error
	if r.Food, err = stringField(obj, "food"); err != nil {
		return r, err
	}
	if r.AmountG, err = numberField(obj, "amount_g"); err != nil {
		return r, err
	}
	if r.Macros, err = macroFields(obj, "kcal", "protein_g", "carbs_g", "fat_g", "fiber_g"); err != nil {
		return r, err
	}
	return r, nil
}

func parseCompactRow(obj map[string]any) (domain.MacroResult, error) {
	var r domain.MacroResult
	var err error
	if r.Food, err = stringField(obj, "food_name"); err != nil {
		return r, err
	}
	if r.AmountG, err = amountField(obj, "amount"); err != nil {
		return r, err
	}
	if r.Macros, err = macroFields(obj, "calories", "protein", "carbs", "fat", "fiber"); err != nil {
		return r, err
	}
	return r, nil
}

func macroFields(obj map[string]any, kcal, protein, carbs, fat, fiber string) (domain.Macros, error) {
	var m domain.Macros
	fields := []struct {
		key string
		dst *float64
	}{
		{kcal, &m.Kcal},
		{protein, &m.ProteinG},
		{carbs, &m.CarbsG},
		{fat, &m.FatG},
		{fiber, &m.FiberG},
	}
	for _, f := range fields {
		v, err := numberField(obj, f.key)
		if err != nil {
			return m, err
		}
		*f.dst = v
	}
	if err := m.Validate(); err != nil {
		return m, invalid("%v", err)
	}
	return m, nil
}

func stringField(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", invalid("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", invalid("field %q must be a non-empty string", key)
	}
	return strings.TrimSpace(s), nil
}

// numberField accepts JSON numbers and numeric strings such as "0"
func numberField(obj map[string]any, key string) (float64, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return 0, invalid("missing field %q", key)
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, invalid("field %q is not numeric: %q", key, t)
		}
		f = parsed
	default:
		return 0, invalid("field %q is not numeric", key)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, invalid("field %q must be a non-negative number", key)
	}
	return f, nil
}

var gramsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*g\b`)

// amountField reads a gram amount that may be a number or a description like
// "150g chicken + 200g rice". Descriptions without grams give 0.
func amountField(obj map[string]any, key string) (float64, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return 0, invalid("missing field %q", key)
	}
	s, isString := v.(string)
	if !isString {
		return numberField(obj, key)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return numberField(map[string]any{key: f}, key)
	}
	var total float64
	for _, m := range gramsPattern.FindAllStringSubmatch(s, -1) {
		g, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			total += g
		}
	}
	return total, nil
}

// ParseRecipes reads a JSON array of suggestions (or an object holding one
// under "suggestions" or "recipes"). Missing or unknown values fall back to
// defaults. Fewer than RecipeCount items is an error; extras are dropped.
func ParseRecipes(text string) ([]domain.RecipeSuggestion, error) {
	v, err := decode(text)
	if err != nil {
		return nil, err
	}

	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		for _, key := range []string{"suggestions", "recipes"} {
			if list, ok := t[key].([]any); ok {
				items = list
				break
			}
		}
		if items == nil {
			return nil, invalid("expected an array of suggestions")
		}
	default:
		return nil, invalid("expected an array of suggestions")
	}
	if len(items) < RecipeCount {
		return nil, invalid("expected %d suggestions, got %d", RecipeCount, len(items))
	}
	items = items[:RecipeCount]

	out := make([]domain.RecipeSuggestion, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]any)
		out[i] = normalizeRecipe(obj, i)
	}
	return out, nil
}

func normalizeRecipe(obj map[string]any, i int) domain.RecipeSuggestion {
	s := domain.RecipeSuggestion{
		Name:         optionalString(obj, "name"),
		Description:  optionalString(obj, "description"),
		PrimaryMacro: domain.NutrientProtein,
		Type:         domain.MealTypeMeal,
	}
	if s.Name == "" {
		s.Name = fmt.Sprintf("Suggestion %d", i+1)
	}
	if s.Description == "" {
		s.Description = "No description provided"
	}
	if n, ok := domain.ParseNutrient(optionalString(obj, "primary_macro")); ok {
		s.PrimaryMacro = n
	}
	if t := domain.MealType(strings.ToLower(optionalString(obj, "type"))); t == domain.MealTypeSnack {
		s.Type = t
	}
	return s
}

func optionalString(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}

// ParseAnalysis returns the trimmed analysis text
func ParseAnalysis(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
