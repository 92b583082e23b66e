package services

// seedTemplate is one curated starter template.
type seedTemplate struct {
	Name        string
	Category    string
	Template    string
	Description string
}

// seedLibrary is the starter set installed by `templates seed`. Bodies
// use the same {variable} convention as generated templates.
var seedLibrary = []seedTemplate{
	{
		Name:     "trading_technical_analysis",
		Category: "trading",
		Template: "Analyze the price action of {symbol} over the {timeframe} timeframe. " +
			"Cover trend direction, key support and resistance levels, and volume. " +
			"Conclude with a bias (bullish, bearish or neutral) and the invalidation level.",
		Description: "Structured technical analysis for a single instrument",
	},
	{
		Name:     "trading_risk_review",
		Category: "trading",
		Template: "Review this open position: {position}. Account size is {account_size} " +
			"and maximum acceptable loss per trade is {risk_percent}%. " +
			"State whether the position respects the risk limit and suggest stop placement.",
		Description: "Position sizing and risk check",
	},
	{
		Name:     "analysis_data_summary",
		Category: "analysis",
		Template: "Summarize the following dataset description: {dataset}. " +
			"List the three most important patterns, any data quality concerns, " +
			"and one follow-up question worth investigating.",
		Description: "First-pass dataset review",
	},
	{
		Name:     "analysis_competitor_scan",
		Category: "analysis",
		Template: "Compare {company} against its competitor {competitor} on {dimension}. " +
			"Use a strengths/weaknesses table and end with a one-paragraph verdict.",
		Description: "Two-company comparison on one dimension",
	},
	{
		Name:     "content_creation_blog_post",
		Category: "content_creation",
		Template: "Write a blog post about {main_topic} for {target_audience}. " +
			"Tone: {tone}. Length: about {word_count} words. " +
			"Open with a hook, use subheadings, and close with a call to action.",
		Description: "Long-form blog post outline and draft",
	},
	{
		Name:     "content_creation_social_thread",
		Category: "content_creation",
		Template: "Turn the following idea into a {platform} thread of {post_count} posts: {idea}. " +
			"Each post stands alone; the first post must earn the click.",
		Description: "Social media thread from a single idea",
	},
	{
		Name:     "automation_email_draft",
		Category: "automation",
		Template: "Draft an email to {recipient} about {subject}. " +
			"Key points to cover: {key_points}. Keep it under 150 words and end with a clear ask.",
		Description: "Short business email draft",
	},
	{
		Name:     "automation_task_breakdown",
		Category: "automation",
		Template: "Break the following goal into concrete, ordered tasks: {goal}. " +
			"For each task give an owner role, an estimate in hours, and its blocking dependencies.",
		Description: "Goal decomposition into an actionable task list",
	},
}
