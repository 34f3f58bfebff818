package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createAnalyzeQueryTool returns the analyze_query tool definition
func createAnalyzeQueryTool() mcp.Tool {
	return mcp.NewTool("analyze_query",
		mcp.WithDescription("Decide whether a question needs fresh web evidence and which search query to use"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The user's question"),
		),
	)
}

// createWebSearchTool returns the web_search tool definition
func createWebSearchTool() mcp.Tool {
	return mcp.NewTool("web_search",
		mcp.WithDescription("Search the web and return titles, URLs and snippets"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of results (default from config, provider maximum applies)"),
		),
	)
}

// createAugmentPromptTool returns the augment_prompt tool definition
func createAugmentPromptTool() mcp.Tool {
	return mcp.NewTool("augment_prompt",
		mcp.WithDescription("Append web evidence (search results and page excerpts) to a message"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message to augment"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Always search instead of letting the query analyzer decide (default: true)"),
		),
	)
}

// createScrapeURLTool returns the scrape_url tool definition
func createScrapeURLTool() mcp.Tool {
	return mcp.NewTool("scrape_url",
		mcp.WithDescription("Fetch a page and extract its main readable text"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute http(s) URL"),
		),
	)
}

// createAuditPageTool returns the audit_page tool definition
func createAuditPageTool() mcp.Tool {
	return mcp.NewTool("audit_page",
		mcp.WithDescription("Audit a page or pasted text for readability, keyword density, structure and sentiment"),
		mcp.WithString("url",
			mcp.Description("Page to fetch and audit"),
		),
		mcp.WithString("content",
			mcp.Description("Plain text to audit instead of fetching a page"),
		),
		mcp.WithArray("keywords",
			mcp.WithStringItems(),
			mcp.Description("Keywords to measure; overrides the configured list"),
		),
		mcp.WithBoolean("persist",
			mcp.Description("Store the audit in history (default: true)"),
		),
	)
}
