package agent

import (
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// newFacilitator creates the advisor leading the conversation with the user.
func newFacilitator(log zerolog.Logger, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Advisor",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			You are a personal investment advisor, you explain portfolio recommendations to the user.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user wants to understand the recommendation computed for them: why this strategy, why
			these instruments, what happens to the money that could not be invested, and what to do next.
			Always check the recommendation with the Analyst before answering, never invent figures.
			You give educational explanations, not regulated financial advice, say so when the user asks
			what to buy.

			Answer in the language the user writes in.
			`),
		},
		Library: NewLibrary(experts),
		Log:     log,
	}
}

// NewAnalyst creates the expert reading recommendations, strategies and the catalog.
func NewAnalyst(tools *Tools, log zerolog.Logger) *Expert {
	lib := tools.Functions()
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the user's saved recommendations, the strategy
		behind them, the instrument catalog and the documentation of the allocation rules.
		Ask the Analyst about any figure of a recommendation.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the analyst of an allocation engine. You use the Tools to read:
			  - the saved recommendations and their history
			  - the strategy and profile scores behind a recommendation
			  - the instrument catalog
			  - the documentation topics describing how allocations are computed

			Quote figures exactly as the tools return them.
			`),
		},
		Library: NewLibrary(lib),
		Log:     log,
	}
}

// NewMarketWatcher creates the expert grounding answers in recent market news.
func NewMarketWatcher(log zerolog.Logger) *Expert {
	return &Expert{
		Name: "MarketWatcher",
		Description: `This expert follows the markets: gold, real estate, bonds, sukuk, stocks and crypto.
		Ask the MarketWatcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You follow financial markets and products, including Shariah compliant ones.
			You leverage Google Search to ground your assertions and relate recent news to the
			question you are asked.
			`),
		},
		Log: log,
	}
}
