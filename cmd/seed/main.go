package main

import (
	"context"
	"log"
	"os"

	"ai-retirement-be/internal/repository/implementation"
	"ai-retirement-be/pkg/database"
	"ai-retirement-be/pkg/tooldata"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a demo user with enough tool data to exercise the cross-tool rules
// and a real generation end to end.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	userIdStr := os.Getenv("SEED_USER_ID")
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		userId = uuid.New()
		color.Yellow("SEED_USER_ID not set or invalid, generated %s", userId)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	records := implementation.NewToolRecordRepository(db)
	ctx := context.Background()

	seeds := map[string]map[string]interface{}{
		tooldata.ToolIncome: {
			"totalIncome":      85000.0,
			"guaranteedIncome": 32000.0,
			"expectedExpenses": 72000.0,
			"savingsBalance":   410000.0,
			"sources": []interface{}{
				map[string]interface{}{"name": "401k", "amount": 2100.0},
				map[string]interface{}{"name": "pension", "amount": 900.0},
				map[string]interface{}{"name": "rental", "amount": 1500.0},
			},
		},
		tooldata.ToolSocialSecurity: {
			"currentAge":              61,
			"claimingAge":             62,
			"fullRetirementAge":       67,
			"estimatedMonthlyBenefit": 2350.0,
		},
		tooldata.ToolTax: {
			"state":            "CA",
			"filingStatus":     "married_joint",
			"effectiveTaxRate": 9.3,
			"annualTaxBurden":  18400.0,
		},
		tooldata.ToolLongevity: {
			"lifeExpectancy":          89,
			"planningHorizonYears":    28,
			"familyHistoryConsidered": true,
		},
		tooldata.ToolLegacy: {
			"estateValue":   1250000.0,
			"hasWill":       false,
			"hasTrust":      false,
			"beneficiaries": []interface{}{"spouse", "two children"},
		},
	}

	color.Cyan("🚀 Seeding tool data for user %s", userId)
	for toolId, data := range seeds {
		recordId, err := records.Upsert(ctx, userId, toolId, data)
		if err != nil {
			color.Red("Failed to seed %s: %v", toolId, err)
			os.Exit(1)
		}
		color.Green("Seeded %s (record %s)", toolId, recordId)
	}

	color.Green("✅ Done: %d tools seeded", len(seeds))
}
