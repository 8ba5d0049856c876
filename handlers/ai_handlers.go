package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"smartstock/forecast"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleForecastInsights asks Gemini for a short commentary on the current
// reorder suggestion batch.
// POST /api/v1/ai/insights
func HandleForecastInsights(c *fiber.Ctx) error {
	ctx := context.Background()

	window, err := salesWindow(c.Query("csv"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load sales window"})
	}

	suggestions, err := reorderEngine.GenerateSuggestions(ctx, window)
	if err != nil {
		log.Printf("Error generating suggestions for insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate suggestions"})
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to initialize Gemini client"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro-latest")
	resp, err := model.GenerateContent(ctx, genai.Text(insightPrompt(suggestions)))
	if err != nil {
		log.Printf("Error generating content: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insights"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": resp})
}

func insightPrompt(suggestions []forecast.Suggestion) string {
	var b strings.Builder
	b.WriteString("You are an inventory analyst. Summarize the most urgent reorders and any anomalies in this suggestion batch:\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(&b, "SKU %s: predicted daily demand %.2f, current stock %d, recommended reorder %d\n",
			s.SKU, s.PredictedDailyDemand, s.CurrentStock, s.RecommendedReorderQty)
	}
	return b.String()
}
