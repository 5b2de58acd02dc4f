package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

// timeRangeSchema is shared by the list and delete tools. The bounds are
// compared as zero-padded HH:MM strings, inclusive on both ends.
func timeRangeSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Inclusive time-of-day window. Both bounds are zero-padded HH:MM strings (server local time); e.g. {\"start\": \"09:00\", \"end\": \"10:00\"}.",
		"properties": map[string]any{
			"start": map[string]any{
				"type":        "string",
				"description": "Window start as zero-padded HH:MM.",
			},
			"end": map[string]any{
				"type":        "string",
				"description": "Window end as zero-padded HH:MM.",
			},
		},
		"required": []string{"start", "end"},
	}
}

// ToolDefinitions returns the summary-note MCP tool definitions.
func ToolDefinitions() []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "summary_create",
			Description: "Create a summary note in the CRM. The note is stored as a NOTE engagement associated with the configured contact, with title, summary, and author encoded in the note body. Returns the assigned ID.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "The title of the note (required, non-empty)",
					},
					"summary": map[string]any{
						"type":        "string",
						"description": "The summary text of the note (required, non-empty)",
					},
					"author": map[string]any{
						"type":        "string",
						"description": "The author of the note (required, non-empty)",
					},
				},
				"required": []string{"title", "summary", "author"},
			},
		},
		{
			Name:        "summary_list",
			Description: "List summary notes, newest first, optionally narrowed by filters. All filters are AND-combined. Only the most recent page of records (about 100) is searched; older notes are not visible to filters. Omitting limit returns all matches on the page.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date": map[string]any{
						"type":        "string",
						"description": "Only notes created on this UTC calendar date, formatted YYYY-MM-DD.",
					},
					"day_of_week": map[string]any{
						"type":        "string",
						"description": "Only notes created on this weekday. Full name, case-insensitive (e.g. \"monday\").",
					},
					"time_range": timeRangeSchema(),
					"query": map[string]any{
						"type":        "string",
						"description": "Only notes whose content contains this text (case-insensitive substring).",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of notes to return (must be positive; omit for no cap).",
					},
				},
			},
		},
		{
			Name:        "summary_update",
			Description: "Update a summary note. Identify the target by id, or by a search query that resolves to the single most recent matching note. Supplied non-empty fields replace the stored ones; empty or omitted fields are left unchanged (a field cannot be cleared). Returns the ID of the updated note.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "The identifier of the note to update. When given, no search is performed.",
					},
					"query": map[string]any{
						"type":        "string",
						"description": "Search text locating the note when id is omitted; the most recent match is updated.",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "New title (omit or empty to keep the current one).",
					},
					"summary": map[string]any{
						"type":        "string",
						"description": "New summary text (omit or empty to keep the current one).",
					},
					"author": map[string]any{
						"type":        "string",
						"description": "New author (omit or empty to keep the current one).",
					},
				},
			},
		},
		{
			Name:        "summary_delete",
			Description: "Delete a summary note. Identify the target by id, or by filters (date, day_of_week, time_range, query); without an id the single most recent match is deleted, even when limit resolves several candidates. With no id and no filters, the most recent note is deleted. Returns the ID actually deleted.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "The identifier of the note to delete. When given, filters are ignored.",
					},
					"date": map[string]any{
						"type":        "string",
						"description": "Only consider notes created on this UTC calendar date (YYYY-MM-DD).",
					},
					"day_of_week": map[string]any{
						"type":        "string",
						"description": "Only consider notes created on this weekday. Full name, case-insensitive.",
					},
					"time_range": timeRangeSchema(),
					"query": map[string]any{
						"type":        "string",
						"description": "Only consider notes whose content contains this text (case-insensitive).",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Candidate cap for resolution (default 1). Only the most recent candidate is deleted.",
					},
				},
			},
		},
	}
}
