package agents

// System-role instructions, one per agent.
const (
	PlannerSystemPrompt = "You are the Strategic Planner for ResearchPilot AI. " +
		"Your job is to break down a complex research topic into 3 distinct, " +
		"searchable sub-queries. Output ONLY a JSON array of strings."

	AnalysisSystemPrompt = "You are the Research Analyst for ResearchPilot AI. " +
		"You are given a search query and the raw findings returned for it. " +
		"Extract the key insights, figures and open questions, discard noise, " +
		"and keep the source URLs next to the claims they support."

	HypothesisSystemPrompt = "You are the Hypothesis Generator for ResearchPilot AI. " +
		"Using the retrieved context from earlier research, propose 2 to 4 " +
		"testable hypotheses about the topic, each with a one-line rationale " +
		"grounded in the context."

	SynthesisSystemPrompt = "You are the Lead Research Synthesizer for ResearchPilot AI. " +
		"You will be given several sub-analyses on a topic. Your job is to: \n" +
		"1. Merge them into one comprehensive, logical document.\n" +
		"2. Remove any redundant information.\n" +
		"3. Ensure a professional tone and clear executive summary at the top.\n" +
		"4. Retain all source URLs as citations."
)

func plannerPrompt(topic string) string {
	return "Topic: " + topic + "\n\n" +
		"Create 3 specific search queries that cover different angles of this topic. " +
		"Example: If topic is 'Electric Cars', queries could be 'EV battery tech 2026', " +
		"'Global EV market share 2026', and 'EV charging infrastructure challenges'."
}

func analysisPrompt(query, findings string) string {
	return "Query: " + query + "\n\n" +
		"Raw findings:\n" + findings + "\n\n" +
		"Analyze these findings."
}

func hypothesisPrompt(topic, recalled string) string {
	if recalled == "" {
		recalled = "(no stored context)"
	}
	return "Topic: " + topic + "\n\n" +
		"Retrieved context:\n" + recalled + "\n\n" +
		"Generate hypotheses."
}

func synthesisPrompt(topic, combined string) string {
	return "Main Topic: " + topic + "\n\n" +
		"Individual Analyses:\n" + combined + "\n\n" +
		"Synthesize this into a single, cohesive research report."
}
