package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
)

const kimiExtractPrompt = `You are a precise nutrition analyzer. Given a food description, extract nutritional information and return ONLY a JSON object.

Required fields:
- food_name: concise name (e.g., "Chickpea curry with rice")
- amount: human-readable amount with grams (e.g., "150g chickpeas + 200g rice")
- calories: integer (kcal)
- protein: grams, 1 decimal
- carbs: grams, 1 decimal
- fat: grams, 1 decimal
- fiber: grams, 1 decimal

Rules:
- Estimate amounts if not specified (use typical serving sizes)
- Be accurate but practical (restaurant portions, not lab measurements)
- Include all ingredients mentioned
- Use 0 for fiber if unknown

Example:
Input: "2 eggs and a slice of sourdough toast"
Output: {"food_name":"Eggs and sourdough toast","amount":"100g eggs + 40g toast","calories":340,"protein":18.5,"carbs":28.0,"fat":16.0,"fiber":2.5}`

const geminiExtractPrompt = `You are a nutrition parser. The user will describe food they ate.
Return ONLY a JSON array of objects with this exact shape, no markdown, no explanation:
[{ "food": string, "amount_g": number, "kcal": number, "protein_g": number, "carbs_g": number, "fat_g": number, "fiber_g": number }]
If the user provides per-100g values, scale them to the actual amount eaten.
If a value is unknown, estimate it. Never return null.`

const geminiPhotoPrompt = `You are a nutrition parser looking at a photo of a meal.
Identify every food item and estimate its weight from the plate size and standard portions.
Return ONLY a JSON array of objects with this exact shape, no markdown, no explanation:
[{ "food": string, "amount_g": number, "kcal": number, "protein_g": number, "carbs_g": number, "fat_g": number, "fiber_g": number }]
If the photo shows no food, return [].
If a value is unknown, estimate it. Never return null.`

const photoDefaultHint = "Identify the food in this photo."

const analysisPrompt = `You are a nutrition coach analyzing up to 7 days of food log data for someone trying to lose weight. They track calories and macros against daily goals for calories, protein, carbs, fat and fiber.
The user is vegetarian and moving towards a plant-based diet. Never suggest meat, fish or seafood. Prefer plant protein such as legumes, tofu, tempeh, edamame, seitan, or high-protein dairy if needed.

You receive daily totals and the list of everything eaten each day. Ignore items that recur every day as staples. Focus on foods that show up intermittently and drive calorie or carb overages.

Give exactly 1-2 observations. Never more.
Only state things the user cannot already see from the raw numbers. Do not restate totals or percentages.
Prefer patterns across days over single-day anomalies. With fewer than 3 days of data, say that conclusions are limited.
End every observation with one concrete action for the next meal or the next day.

Never praise. Never use words like "great", "good job", "well done".
Never shame or frame specific foods negatively.
If there is no meaningful pattern, say so in one sentence and stop.

Tone: direct and neutral.
Format: plain sentences only. No bullet points, headers, markdown or lists.`

const recipesPrompt = `Return exactly 3 suggestions (2 meals + 1 snack) that best address the macro gaps in the provided food log. Keep the snack simple and realistic, like a piece of fruit, yogurt with grains, or toast with cheese.
The user is vegetarian, so every suggestion must be plant-based with no meat, poultry or fish. Milk-free alternatives are fine (e.g. almond milk, soy yogurt).

Respond ONLY with a JSON array, no markdown, no explanation:
[
  {
    "name": string,
    "description": string (one sentence),
    "primary_macro": "protein" | "carbs" | "fat" | "fiber" | "kcal",
    "type": "meal" | "snack"
  }
]`

type promptDay struct {
	Date   string        `json:"date"`
	Totals domain.Macros `json:"totals"`
	Foods  []string      `json:"foods"`
}

// formatNumber keeps at most one decimal and drops a trailing ".0"
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10+0, 'f', -1, 64)
}

func goalsLine(goals domain.MacroGoals) string {
	return fmt.Sprintf("Daily goals: %s kcal, %sg protein, %sg carbs, %sg fat, %sg fiber",
		formatNumber(goals.Kcal), formatNumber(goals.ProteinG), formatNumber(goals.CarbsG),
		formatNumber(goals.FatG), formatNumber(goals.FiberG))
}

func dayLog(days []domain.DayData) string {
	out := make([]promptDay, len(days))
	for i, d := range days {
		foods := make([]string, len(d.Entries))
		for j, e := range d.Entries {
			foods[j] = fmt.Sprintf("%s (%sg, %s kcal)", e.Food, formatNumber(e.AmountG), formatNumber(e.Kcal))
		}
		out[i] = promptDay{Date: d.Date.String(), Totals: d.Totals, Foods: foods}
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}

func buildAnalysisInput(days []domain.DayData, goals domain.MacroGoals) string {
	return fmt.Sprintf("%s\n\n%d-day food log:\n%s", goalsLine(goals), len(days), dayLog(days))
}

// gapPhrase renders "under by 120g" for a positive gap and "over by 40g" otherwise
func gapPhrase(n domain.Nutrient, gap float64) string {
	unit := "g"
	if n == domain.NutrientKcal {
		unit = ""
	}
	amount := math.Round(math.Abs(gap))
	if gap > 0 {
		return fmt.Sprintf("under by %.0f%s", amount, unit)
	}
	return fmt.Sprintf("over by %.0f%s", amount, unit)
}

func buildRecipesInput(days []domain.DayData, goals domain.MacroGoals) string {
	totals := make([]domain.DayTotals, len(days))
	for i, d := range days {
		totals[i] = domain.DayTotals{Date: d.Date, Macros: d.Totals}
	}
	gaps := nutrition.Gaps(nutrition.MultiDayTotal(totals).Macros, goals, len(days))

	var b strings.Builder
	b.WriteString(goalsLine(goals))
	fmt.Fprintf(&b, "\n\nMacro gaps over %d day(s):\n", len(days))
	for _, n := range domain.Nutrients {
		fmt.Fprintf(&b, "- %s: %s\n", n.Label(), gapPhrase(n, gaps.Get(n)))
	}
	b.WriteString("\nFood log:\n")
	b.WriteString(dayLog(days))
	return b.String()
}
